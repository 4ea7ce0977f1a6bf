package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wasicap/wasicap/hostmod"
	"github.com/wasicap/wasicap/wasi"
)

func main() {
	var (
		wasmFile = flag.String("wasm", "", "Path to wasm module")
		cliArgs  = flag.String("argv", "", "Guest arguments (comma-separated)")
		envVars  = flag.String("env", "", "Environment variables (KEY=VAL,KEY2=VAL2)")
		preopens = flag.String("preopens", "", "Preopened directories (/host:/guest,/host2:/guest2)")
		stdin    = flag.String("stdin", "", "Stdin data")
		verbose  = flag.Bool("v", false, "Trace host calls")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: wasicap-run -wasm <file.wasm> [-argv a,b] [-env K=V,...] [-preopens /h:/g] [-stdin data] [-v]")
		os.Exit(1)
	}

	if err := run(*wasmFile, *cliArgs, *envVars, *preopens, *stdin, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, argvStr, envStr, preopensStr, stdinStr string, verbose bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	b := wasi.NewBuilder().InheritStdio()

	if argvStr != "" {
		for _, a := range strings.Split(argvStr, ",") {
			b.Arg(a)
		}
	}
	if envStr != "" {
		for _, kv := range strings.Split(envStr, ",") {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				b.Env(parts[0], parts[1])
			}
		}
	}
	if preopensStr != "" {
		for _, p := range strings.Split(preopensStr, ",") {
			parts := strings.SplitN(p, ":", 2)
			if len(parts) == 2 {
				b.PreopenedDir(newOSDir(parts[0]), parts[1])
			}
		}
	}
	if stdinStr != "" {
		b.Stdin(newMemFile([]byte(stdinStr)))
	}
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		b.Logger(log)
	}

	wc, err := b.Build()
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	if _, err := hostmod.InstantiateCrypto(ctx, r, wc); err != nil {
		return fmt.Errorf("register crypto module: %w", err)
	}
	if _, err := hostmod.InstantiateCore(ctx, r, wc); err != nil {
		return fmt.Errorf("register core module: %w", err)
	}

	// Instantiation runs the module's _start export.
	mod, err := r.InstantiateWithConfig(ctx, data, wazero.NewModuleConfig().WithName("main"))
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	return mod.Close(ctx)
}
