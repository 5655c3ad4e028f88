// Package webgl implements [github.com/soypat/boids.Device] on a browser
// WebGL 1 context through syscall/js. It is only built for GOOS=js GOARCH=wasm.
package webgl
