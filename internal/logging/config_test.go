package logging

import (
	"strings"
	"testing"
)

func TestReadEnvironment(t *testing.T) {
	tf := newTestFacility(t)
	tf.env["COMPONENT_FSAL"] = "NIV_FULL_DEBUG"
	tf.env["COMPONENT_NLM"] = "debug"

	tf.ReadEnvironment()

	tests := []struct {
		comp Component
		want Level
	}{
		{ComponentFSAL, LevelFullDebug},
		{ComponentNLM, LevelDebug},
	}
	for _, tt := range tests {
		if got := tf.Level(tt.comp); got != tt.want {
			t.Errorf("Level(%v) = %v, want %v", tt.comp, got, tt.want)
		}
		if !tf.Pinned(tt.comp) {
			t.Errorf("Pinned(%v) = false, want true", tt.comp)
		}
	}
	if tf.Pinned(ComponentMain) {
		t.Error("Pinned(MAIN) = true without an environment variable")
	}
}

func TestReadEnvironmentInvalid(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentLog, "TEST"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.env["COMPONENT_FSAL"] = "LOUD"

	tf.ReadEnvironment()

	want := "Environment variable COMPONENT_FSAL exists, but the value LOUD is not a valid log level.\n"
	if got := tf.stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if tf.Pinned(ComponentFSAL) {
		t.Error("invalid environment value pinned the component")
	}
}

func TestApplyConfig(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentConfig, "TEST"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.env["COMPONENT_NLM"] = "NIV_CRIT"
	tf.ReadEnvironment()

	applied := tf.ApplyConfig([]ConfigPair{
		{"COMPONENT_ALL", "NIV_INFO"},
		{"FSAL", "NIV_FULL_DEBUG"},
		{"COMPONENT_NLM", "NIV_DEBUG"},
		{"COMPONENT_BOGUS", "NIV_DEBUG"},
		{"COMPONENT_MAIN", "LOUD"},
	})

	if applied != 3 {
		t.Errorf("ApplyConfig() = %d, want 3", applied)
	}

	tests := []struct {
		comp Component
		want Level
	}{
		{ComponentFSAL, LevelFullDebug},
		{ComponentNLM, LevelCrit},
		{ComponentMain, LevelInfo},
		{ComponentVerbosity, LevelNull},
	}
	for _, tt := range tests {
		if got := tf.Level(tt.comp); got != tt.want {
			t.Errorf("Level(%v) = %v, want %v", tt.comp, got, tt.want)
		}
	}

	out := tf.stdout.String()
	for _, want := range []string{
		`"COMPONENT_BOGUS" is not a valid LOG COMPONENT`,
		`"LOUD" is not a valid LOG LEVEL for "COMPONENT_MAIN"`,
		"LOG COMPONENT_NLM level NIV_DEBUG from config is ignored because NIV_CRIT was set in environment",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSetNames(t *testing.T) {
	tf := newTestFacility(t)

	tf.SetNameProgram("ganesha")
	tf.SetNameHost("node-1")
	if tf.ProgramName() != "ganesha" || tf.HostName() != "node-1" {
		t.Errorf("names = %q, %q", tf.ProgramName(), tf.HostName())
	}
	if len(tf.exits) != 0 {
		t.Errorf("exit called: %v", tf.exits)
	}
}

func TestSetNamesTooLong(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Facility, string)
		max  int
	}{
		{"program", (*Facility).SetNameProgram, MaxProgramNameLen},
		{"host", (*Facility).SetNameHost, MaxHostNameLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := newTestFacility(t)
			tt.set(tf.Facility, strings.Repeat("x", tt.max+1))

			if len(tf.exits) != 1 || tf.exits[0] != 1 {
				t.Errorf("exit codes = %v, want [1]", tf.exits)
			}
			if tf.ProgramName() != "prog" || tf.HostName() != "host" {
				t.Errorf("names changed to %q, %q", tf.ProgramName(), tf.HostName())
			}
		})
	}
}
