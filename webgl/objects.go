package webgl

// objectTable hands out non-zero uint32 handles for values that cannot cross
// the [github.com/soypat/boids.Device] interface directly. A value may be
// owned by another handle, in which case it is freed together with its owner.
type objectTable[V any] struct {
	objects map[uint32]V
	owned   map[uint32][]uint32
	next    uint32
}

func newObjectTable[V any]() objectTable[V] {
	return objectTable[V]{
		objects: make(map[uint32]V),
		owned:   make(map[uint32][]uint32),
	}
}

func (t *objectTable[V]) store(v V) uint32 {
	t.next++
	t.objects[t.next] = v
	return t.next
}

// storeOwned stores v so that it is freed when owner is freed.
func (t *objectTable[V]) storeOwned(owner uint32, v V) uint32 {
	id := t.store(v)
	t.owned[owner] = append(t.owned[owner], id)
	return id
}

func (t *objectTable[V]) load(id uint32) (v V, ok bool) {
	v, ok = t.objects[id]
	return v, ok
}

// free removes id and every value it owns from the table and returns the
// value stored under id.
func (t *objectTable[V]) free(id uint32) (v V, ok bool) {
	v, ok = t.objects[id]
	delete(t.objects, id)
	for _, child := range t.owned[id] {
		t.free(child)
	}
	delete(t.owned, id)
	return v, ok
}

func (t *objectTable[V]) len() int { return len(t.objects) }
