// bfx CLI - the main entry point for running Brainfuck programs
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/bfx-lang/bfx/manifest"
	"github.com/bfx-lang/bfx/pkg/bytecode"
	"github.com/bfx-lang/bfx/store"
)

const VERSION = "1.0.0"

var log = commonlog.GetLogger("bfx")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	output := flag.String("o", "", "Output path for build (default derived from the input file)")
	noCache := flag.Bool("no-cache", false, "Skip the compile cache even when the manifest enables it")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bfx [options] [command] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs Brainfuck programs on a 30,000-cell tape.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  run file       Run a .bf source or .bfc compiled program (default)\n")
		fmt.Fprintf(os.Stderr, "  build [file]   Compile to a .bfc file\n")
		fmt.Fprintf(os.Stderr, "  disasm file    Print a bytecode listing\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bfx hello.bf           # Run a program\n")
		fmt.Fprintf(os.Stderr, "  bfx -i                 # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  bfx build hello.bf     # Compile to hello.bfc\n")
		fmt.Fprintf(os.Stderr, "  bfx build              # Compile the bfx.toml entry\n")
		fmt.Fprintf(os.Stderr, "  bfx disasm hello.bfc   # Show the instruction listing\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if *showVersion {
		fmt.Printf("bfx %s\n", VERSION)
		return
	}

	args := flag.Args()

	if *interactive || len(args) == 0 {
		runREPL()
		return
	}

	switch args[0] {
	case "build":
		src, out, err := resolveBuildPaths(args[1:], *output)
		if err != nil {
			fatal(err)
		}
		if err := runBuild(src, out); err != nil {
			fatal(err)
		}
	case "disasm":
		if len(args) < 2 {
			fatal(errors.New("disasm: missing file argument"))
		}
		if err := runDisasm(args[1]); err != nil {
			fatal(err)
		}
	case "run":
		runProgram(args[1:], *noCache)
	default:
		// No command: treat the arguments as a program path.
		runProgram(args, *noCache)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// runProgram loads, compiles and runs one program with the process
// standard streams, then reports the terminal result.
func runProgram(args []string, noCache bool) {
	path, err := resolveProgramPath(args)
	if err != nil {
		fatal(err)
	}

	prog, err := loadProgram(path, noCache)
	if err != nil {
		fatal(err)
	}
	log.Infof("loaded %s (%d instructions)", path, prog.Len())

	m := bytecode.NewMachine(prog, os.Stdin, os.Stdout)
	if err := m.Run(); err != nil {
		fatal(err)
	}

	fmt.Println()
	fmt.Println("Program completed successfully")
}

// resolveProgramPath picks the program file: the argument if given,
// otherwise the manifest entry of the enclosing project.
func resolveProgramPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", errors.New("no program file given and no bfx.toml found")
	}
	return m.EntryPath(), nil
}

// loadProgram reads a program from disk. Files with a .bfc extension are
// deserialized from the wire format; anything else is treated as source
// and compiled, going through the compile cache when the enclosing
// project enables it. Read errors surface unmodified.
func loadProgram(path string, noCache bool) (*bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == ".bfc" {
		return bytecode.UnmarshalProgram(data)
	}

	if !noCache {
		m, err := manifest.FindAndLoad(filepath.Dir(path))
		if err == nil && m != nil && m.Build.Cache {
			return loadCached(m, data)
		}
	}

	return bytecode.Compile(data), nil
}

// loadCached compiles src through the project's compile cache. Cache
// faults are never fatal: the source always compiles locally.
func loadCached(m *manifest.Manifest, src []byte) (*bytecode.Program, error) {
	s, err := store.Open(m.CachePath())
	if err != nil {
		log.Warningf("compile cache unavailable: %v", err)
		return bytecode.Compile(src), nil
	}
	defer s.Close()

	hash := store.SourceHash(src)
	if chunk, err := s.Get(hash); err == nil {
		if prog, err := bytecode.UnmarshalProgram(chunk); err == nil {
			log.Infof("compile cache hit for %s", hash[:12])
			return prog, nil
		}
		log.Warningf("discarding corrupt cache entry %s", hash[:12])
	}

	prog := bytecode.Compile(src)
	if chunk, err := bytecode.MarshalProgram(prog); err == nil {
		if err := s.Put(hash, chunk); err != nil {
			log.Warningf("compile cache write failed: %v", err)
		}
	}
	return prog, nil
}

// resolveBuildPaths picks the source and output paths for a build from
// the arguments, the -o flag and the enclosing manifest.
func resolveBuildPaths(args []string, output string) (string, string, error) {
	var src string
	if len(args) > 0 {
		src = args[0]
	} else {
		m, err := manifest.FindAndLoad(".")
		if err != nil {
			return "", "", err
		}
		if m == nil {
			return "", "", errors.New("no source file given and no bfx.toml found")
		}
		src = m.EntryPath()
		if output == "" {
			output = m.OutputPath()
		}
	}

	if output == "" {
		ext := filepath.Ext(src)
		output = src[:len(src)-len(ext)] + ".bfc"
	}
	return src, output, nil
}

// runBuild compiles srcPath and writes the wire-encoded program to
// outPath.
func runBuild(srcPath, outPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	prog := bytecode.Compile(src)
	data, err := bytecode.MarshalProgram(prog)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d instructions)\n", outPath, prog.Len())
	return nil
}

// runDisasm prints a bytecode listing for a source or compiled file.
func runDisasm(path string) error {
	prog, err := loadProgram(path, true)
	if err != nil {
		return err
	}
	fmt.Print(prog.DisassembleWithName(filepath.Base(path)))
	return nil
}
