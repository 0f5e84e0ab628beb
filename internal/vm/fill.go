package vm

import "walle/internal/canvas"

type point struct{ x, y int }

var neighbours = [4]point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// fill recolors the 4-connected region under the pen with the pen color.
// Fill paints single pixels; the brush size does not apply.
func (vm *VM) fill() *RuntimeError {
	if !vm.Pen.Spawned {
		return vm.eb.notSpawned("Fill")
	}
	cv := vm.Canvas
	start := point{vm.Pen.X, vm.Pen.Y}
	if !cv.InBounds(start.x, start.y) {
		return nil
	}
	target, col := cv.At(start.x, start.y), vm.Pen.Color
	if target == col || col == canvas.Transparent {
		return nil
	}

	size := cv.Size()
	visited := make([]bool, size*size)
	visited[start.y*size+start.x] = true
	queue := []point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		vm.setPixel(p.x, p.y, col)

		for _, d := range neighbours {
			n := point{p.x + d.x, p.y + d.y}
			if !cv.InBounds(n.x, n.y) || visited[n.y*size+n.x] || cv.At(n.x, n.y) != target {
				continue
			}
			visited[n.y*size+n.x] = true
			queue = append(queue, n)
		}
	}
	return nil
}
