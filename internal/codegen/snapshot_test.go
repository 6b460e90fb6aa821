package codegen

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune obsolete snapshots across this package's
// test run, the same registration the teacher's fixture runner does in
// internal/interp/fixture_test.go.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// TestEmittedAssemblySnapshots golden-tests the generator's textual
// assembly output for a handful of representative programs, the way
// the teacher snapshot-tests interpreter output per fixture.
func TestEmittedAssemblySnapshots(t *testing.T) {
	programs := map[string]string{
		"arithmetic": "routine main() is var x: integer is 2 + 3 * 4; print(x); end;",
		"array":      "routine main() is var a: array [3] integer; a[0] := 1; print(a[0]); end;",
		"record": `type P is record var age: integer; end;
routine main() is var p: P; p.age := 5; print(p.age); end;`,
		"routine_call": `routine add(x: integer, y: integer): integer is return x + y; end;
routine main() is print(add(1, 2)); end;`,
		"control_flow": `routine main() is
var i: integer is 0;
while i < 3 loop
  print(i);
  i := i + 1;
end;
end;`,
	}

	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}

	for _, name := range names {
		src := programs[name]
		t.Run(name, func(t *testing.T) {
			out := compile(t, src)
			snaps.MatchSnapshot(t, name+"_main", out.MainUnit)
		})
	}
}
