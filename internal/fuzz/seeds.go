package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var programSeeds = []string{
	"",
	"Spawn(0, 0)\n",
	"Spawn(0,0)\nColor(\"Red\")\nSize(3)\nDrawLine(1, 0, 5)\n",
	"Spawn(5, 5)\nColor(\"Blue\")\nDrawCircle(1, 1, 3)\nFill()\n",
	"Spawn(1,1)\nn <- 0\nloop\nDrawLine(1,1,1)\nn <- n + 1\nGoTo [loop] (n < 4)\n",
	"Spawn(0,0)\nx <- 2 ** 3 % 5 - -1\nb <- x >= 3 && !(x == 4) || false\n",
	"Spawn(0,0)\nDrawRectangle(1, 0, 2, 3, 4)\nc <- GetColorCount(\"White\", 0, 0, 3, 3)\n",
	"Spawn(0,0)\nGoTo [missing] (true)\n",
	"Spawn(0,0)\nColor(\"Pink\n",
	"Spawn(,)\n@@\n123456789012345678901234567890\n",
	"Color(\"Red\")\nSpawn(0,0)\n",
	"Spawn(0,0)\r\nIsCanvasColor(\"Red\", 0, 0)\r\n",
}

func addSeeds(f *testing.F) {
	for _, s := range programSeeds {
		f.Add([]byte(s))
	}
}

// clamp copies input, cut to maxFuzzInput bytes.
func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
