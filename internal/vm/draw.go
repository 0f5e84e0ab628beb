package vm

import (
	"math"

	"walle/internal/canvas"
)

// setPixel writes one in-bounds pixel and notifies the observer.
func (vm *VM) setPixel(x, y int, c canvas.Color) {
	if !vm.Canvas.Set(x, y, c) {
		return
	}
	if vm.opts.OnPixel != nil {
		vm.opts.OnPixel(x, y, c)
	}
}

// stamp paints the square brush centred on (x, y). A transparent pen
// leaves the canvas untouched.
func (vm *VM) stamp(x, y int) {
	col := vm.Pen.Color
	if col == canvas.Transparent {
		return
	}
	r := vm.Pen.Size / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			vm.setPixel(x+dx, y+dy, col)
		}
	}
}

func checkDirection(dx, dy int) bool {
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// drawLine stamps dist+1 points from the pen along (dx, dy) and leaves the
// pen on the last one.
func (vm *VM) drawLine(dx, dy, dist int) *RuntimeError {
	if !vm.Pen.Spawned {
		return vm.eb.notSpawned("DrawLine")
	}
	if !checkDirection(dx, dy) {
		return vm.eb.badDirection(dx, dy)
	}
	x, y := vm.Pen.X, vm.Pen.Y
	for i := 0; i <= dist; i++ {
		vm.stamp(x+dx*i, y+dy*i)
	}
	vm.Pen.X, vm.Pen.Y = x+dx*dist, y+dy*dist
	return nil
}

// drawCircle outlines a circle of radius r centred radius steps away from
// the pen along (dx, dy). The pen moves to the centre.
func (vm *VM) drawCircle(dx, dy, r int) *RuntimeError {
	if !vm.Pen.Spawned {
		return vm.eb.notSpawned("DrawCircle")
	}
	cx, cy := vm.Pen.X+dx*r, vm.Pen.Y+dy*r
	for i := -r; i <= r; i++ {
		y0 := int(math.Round(math.Sqrt(float64(r*r - i*i))))
		vm.plotOctants(cx, cy, i, y0)
		vm.plotOctants(cx, cy, i, -y0)
	}
	vm.Pen.X, vm.Pen.Y = cx, cy
	return nil
}

// plotOctants stamps the eight mirror images of offset (ox, oy).
func (vm *VM) plotOctants(cx, cy, ox, oy int) {
	vm.stamp(cx+ox, cy+oy)
	vm.stamp(cx-ox, cy+oy)
	vm.stamp(cx+ox, cy-oy)
	vm.stamp(cx-ox, cy-oy)
	vm.stamp(cx+oy, cy+ox)
	vm.stamp(cx-oy, cy+ox)
	vm.stamp(cx+oy, cy-ox)
	vm.stamp(cx-oy, cy-ox)
}

// drawRectangle outlines a width x height rectangle centred dist steps away
// from the pen along (dx, dy). The pen moves to the centre.
func (vm *VM) drawRectangle(dx, dy, dist, width, height int) *RuntimeError {
	if !vm.Pen.Spawned {
		return vm.eb.notSpawned("DrawRectangle")
	}
	cx, cy := vm.Pen.X+dx*dist, vm.Pen.Y+dy*dist
	x1, x2 := cx-width/2, cx+width/2
	y1, y2 := cy-height/2, cy+height/2

	for x := x1; x <= x2; x++ {
		vm.stamp(x, y1)
		vm.stamp(x, y2)
	}
	for y := y1; y <= y2; y++ {
		vm.stamp(x1, y)
		vm.stamp(x2, y)
	}
	vm.Pen.X, vm.Pen.Y = cx, cy
	return nil
}
