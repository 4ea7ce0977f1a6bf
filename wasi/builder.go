package wasi

import (
	"crypto/rand"
	"io"

	"go.uber.org/zap"

	"github.com/wasicap/wasicap"
	"github.com/wasicap/wasicap/caps"
	"github.com/wasicap/wasicap/table"
	"github.com/wasicap/wasicap/wasi/stdio"
)

// Builder accumulates the configuration of a guest instance. Option methods
// only record; Build is the single fallible terminal operation and validates
// the accumulated arguments and environment.
type Builder struct {
	args     []string
	env      []string
	stdin    wasicap.File
	stdout   wasicap.File
	stderr   wasicap.File
	preopens []preopen
	random   io.Reader
	clocks   *Clocks
	log      *zap.Logger
}

type preopen struct {
	dir  wasicap.Dir
	path string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Arg appends one argument string. Validation happens at Build.
func (b *Builder) Arg(arg string) *Builder {
	b.args = append(b.args, arg)
	return b
}

// Env appends one environment variable. Validation happens at Build.
func (b *Builder) Env(key, value string) *Builder {
	b.env = append(b.env, key+"="+value)
	return b
}

// Stdin reserves handle 0 for f.
// Broader rights would be valid here, but stdin stays read-only.
func (b *Builder) Stdin(f wasicap.File) *Builder {
	b.stdin = f
	return b
}

// Stdout reserves handle 1 for f.
// Broader rights would be valid here, but stdout stays append-only.
func (b *Builder) Stdout(f wasicap.File) *Builder {
	b.stdout = f
	return b
}

// Stderr reserves handle 2 for f.
// Broader rights would be valid here, but stderr stays append-only.
func (b *Builder) Stderr(f wasicap.File) *Builder {
	b.stderr = f
	return b
}

// InheritStdio binds the host process's standard streams to handles 0-2.
func (b *Builder) InheritStdio() *Builder {
	return b.Stdin(stdio.Stdin()).Stdout(stdio.Stdout()).Stderr(stdio.Stderr())
}

// PreopenedDir grants the guest a directory root at its guest-visible path,
// installed at the first free handle with full directory and file rights.
func (b *Builder) PreopenedDir(dir wasicap.Dir, guestPath string) *Builder {
	b.preopens = append(b.preopens, preopen{dir: dir, path: guestPath})
	return b
}

// Random overrides the randomness source. The default factory is the OS
// entropy source, crypto/rand.Reader.
func (b *Builder) Random(r io.Reader) *Builder {
	b.random = r
	return b
}

// WithClocks overrides the clock sources. The default factory is
// DefaultClocks.
func (b *Builder) WithClocks(c *Clocks) *Builder {
	b.clocks = c
	return b
}

// Logger injects a logger for host-call tracing. Defaults to a no-op.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.log = l
	return b
}

// Build validates the accumulated configuration and constructs the Ctx.
// It fails only on arg/env invariant violations or table installation
// failure; a failed Build installs nothing.
func (b *Builder) Build() (*Ctx, error) {
	args := &StringArray{}
	for _, a := range b.args {
		if err := args.Push(a); err != nil {
			return nil, err
		}
	}
	env := &StringArray{}
	for _, e := range b.env {
		if err := env.Push(e); err != nil {
			return nil, err
		}
	}

	tbl := table.New()
	if b.stdin != nil {
		tbl.InsertAt(0, NewFileEntry(caps.HandleRights{Base: caps.FDRead}, b.stdin))
	}
	if b.stdout != nil {
		tbl.InsertAt(1, NewFileEntry(caps.HandleRights{Base: caps.FDWrite}, b.stdout))
	}
	if b.stderr != nil {
		tbl.InsertAt(2, NewFileEntry(caps.HandleRights{Base: caps.FDWrite}, b.stderr))
	}
	for _, p := range b.preopens {
		rights := caps.HandleRights{
			Base:       caps.AllDirRights,
			Inheriting: caps.AllDirRights | caps.AllFileRights,
		}
		if _, err := tbl.Push(NewDirEntry(rights, p.path, p.dir)); err != nil {
			return nil, err
		}
	}

	random := b.random
	if random == nil {
		random = rand.Reader
	}
	clocks := b.clocks
	if clocks == nil {
		clocks = DefaultClocks()
	}
	log := b.log
	if log == nil {
		log = zap.NewNop()
	}

	return &Ctx{
		args:   args,
		env:    env,
		random: random,
		clocks: clocks,
		tbl:    tbl,
		log:    log,
	}, nil
}
