package proc

import (
	"errors"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type fakeProc struct {
	pid, ppid int
	exe       string
}

func (f fakeProc) Pid() int           { return f.pid }
func (f fakeProc) PPid() int          { return f.ppid }
func (f fakeProc) Executable() string { return f.exe }

func resolver(procs []ps.Process, args map[int]string) *Resolver {
	return &Resolver{
		procs: func() ([]ps.Process, error) { return procs, nil },
		argsFn: func(pid int) string {
			return args[pid]
		},
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		panePID int
		procs   []ps.Process
		args    map[int]string
		want    string
		wantOK  bool
	}{
		{
			name:    "single child with argv",
			panePID: 100,
			procs: []ps.Process{
				fakeProc{pid: 101, ppid: 100, exe: "nvim"},
			},
			args:   map[int]string{101: "nvim main.go"},
			want:   "nvim main.go",
			wantOK: true,
		},
		{
			name:    "oldest child wins",
			panePID: 100,
			procs: []ps.Process{
				fakeProc{pid: 205, ppid: 100, exe: "fzf"},
				fakeProc{pid: 101, ppid: 100, exe: "nvim"},
			},
			args:   map[int]string{101: "nvim main.go", 205: "fzf"},
			want:   "nvim main.go",
			wantOK: true,
		},
		{
			name:    "own process excluded",
			panePID: 100,
			procs: []ps.Process{
				fakeProc{pid: 101, ppid: 100, exe: "window-namer"},
				fakeProc{pid: 102, ppid: 100, exe: "htop"},
			},
			args:   map[int]string{102: "htop -d 10"},
			want:   "htop -d 10",
			wantOK: true,
		},
		{
			name:    "idle shell has no children",
			panePID: 100,
			procs: []ps.Process{
				fakeProc{pid: 300, ppid: 200, exe: "other"},
			},
			wantOK: false,
		},
		{
			name:    "argv unavailable falls back to executable",
			panePID: 100,
			procs: []ps.Process{
				fakeProc{pid: 101, ppid: 100, exe: "htop"},
			},
			want:   "htop",
			wantOK: true,
		},
		{
			name:    "invalid pid",
			panePID: 0,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolver(tt.procs, tt.args)
			got, ok := r.CommandLine(tt.panePID)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandLineProcessTableError(t *testing.T) {
	r := &Resolver{
		procs:  func() ([]ps.Process, error) { return nil, errors.New("denied") },
		argsFn: func(int) string { return "" },
	}
	if _, ok := r.CommandLine(100); ok {
		t.Error("expected ok=false on process table error")
	}
}
