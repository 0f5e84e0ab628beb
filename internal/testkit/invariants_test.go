package testkit_test

import (
	"context"
	"testing"

	"walle/internal/driver"
	"walle/internal/testkit"
)

func TestInvariantsHoldForValidPrograms(t *testing.T) {
	programs := []string{
		"Spawn(0, 0)\n",
		"Spawn(1,1)\nColor(\"Red\")\n\nn <- 0\nloop\nDrawLine(1,1,1)\nn <- n + 1\nGoTo [loop] (n < 4)\n",
		"Spawn(0,0)\nfirst\nsecond\nGoTo [second] (false)\nGoTo [first] (false)\n",
	}
	for _, src := range programs {
		res := driver.CheckSource(context.Background(), "mem.pw", []byte(src), driver.Options{})
		if !res.OK() {
			t.Fatalf("%q: unexpected diagnostics", src)
		}
		if err := testkit.CheckProgramInvariants(res.Builder, res.Program, res.File); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestInvariantsRejectNil(t *testing.T) {
	if err := testkit.CheckProgramInvariants(nil, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
