package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/sampl-lang/sampl/internal/cache"
	"github.com/sampl-lang/sampl/internal/compiler"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/utils"
)

const usage = `Usage: samplc <command> [arguments]

Commands:
  check <file>               type check a source file
  fmt [-w] <file>            print the canonical form, or rewrite the file with -w
  build [-o <out>] <file>    transpile to Kotlin
  cache ls                   list cached builds
  cache clear                remove all cached builds
  version                    print the compiler version
  help                       show this message
`

// cli holds the streams and arguments of one invocation. Each handler
// reports whether it recognized the command and leaves the exit status
// in code.
type cli struct {
	args   []string
	stdout io.Writer
	stderr io.Writer
	color  bool
	code   int
}

func main() {
	fd := os.Stderr.Fd()
	c := &cli{
		args:   os.Args,
		stdout: os.Stdout,
		stderr: os.Stderr,
		color:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
	os.Exit(c.run())
}

func (c *cli) run() int {
	if len(c.args) < 2 {
		fmt.Fprint(c.stderr, usage)
		return 2
	}
	switch {
	case c.handleVersion(), c.handleHelp(), c.handleCheck(), c.handleFmt(), c.handleBuild(), c.handleCache():
		return c.code
	}
	fmt.Fprintf(c.stderr, "Unknown command: %s\n", c.args[1])
	fmt.Fprint(c.stderr, usage)
	return 2
}

func (c *cli) fail(format string, args ...interface{}) {
	fmt.Fprintf(c.stderr, format+"\n", args...)
	c.code = 1
}

func (c *cli) handleVersion() bool {
	switch c.args[1] {
	case "version", "-v", "-version", "--version":
		fmt.Fprintln(c.stdout, "samplc "+config.Version)
		return true
	}
	return false
}

func (c *cli) handleHelp() bool {
	switch c.args[1] {
	case "help", "-help", "--help", "-h":
		fmt.Fprint(c.stdout, usage)
		return true
	}
	return false
}

// parseFlags splits the arguments after the command into the single source
// path and the value of an optional flag. Boolean flags are reported as "true".
func parseFlags(args []string, flag string, takesValue bool) (path, value string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == flag && takesValue:
			if i+1 >= len(args) {
				return "", "", fmt.Errorf("%s requires a value", flag)
			}
			i++
			value = args[i]
		case arg == flag:
			value = "true"
		case strings.HasPrefix(arg, "-"):
			return "", "", fmt.Errorf("unknown flag %s", arg)
		case path != "":
			return "", "", fmt.Errorf("unexpected argument %s", arg)
		default:
			path = arg
		}
	}
	if path == "" {
		return "", "", fmt.Errorf("missing source file")
	}
	return path, value, nil
}

// load reads a source file and the configuration governing it.
func (c *cli) load(path string) (*pipeline.PipelineContext, bool) {
	if !config.HasSourceExt(path) {
		c.fail("Not a source file: %s (expected %s)", path, strings.Join(config.SourceFileExtensions, " or "))
		return nil, false
	}
	source, err := os.ReadFile(path)
	if err != nil {
		c.fail("Error reading file: %s", err)
		return nil, false
	}
	cfg, err := config.Resolve(utils.GetModuleDir(path))
	if err != nil {
		c.fail("Config error: %s", err)
		return nil, false
	}
	return pipeline.NewContext(string(source), path, cfg), true
}

func (c *cli) report(ctx *pipeline.PipelineContext) bool {
	if !ctx.Failed() {
		return false
	}
	for _, e := range ctx.Errors {
		fmt.Fprint(c.stderr, diagnostics.Render(e, ctx.SourceCode, c.color))
	}
	c.code = 1
	return true
}

func (c *cli) handleCheck() bool {
	if c.args[1] != "check" {
		return false
	}
	path, _, err := parseFlags(c.args[2:], "", false)
	if err != nil {
		c.fail("check: %s", err)
		return true
	}
	ctx, ok := c.load(path)
	if !ok {
		return true
	}
	if c.report(compiler.Check().Run(ctx)) {
		return true
	}
	fmt.Fprintf(c.stdout, "%s: ok\n", path)
	return true
}

func (c *cli) handleFmt() bool {
	if c.args[1] != "fmt" {
		return false
	}
	path, write, err := parseFlags(c.args[2:], "-w", false)
	if err != nil {
		c.fail("fmt: %s", err)
		return true
	}
	ctx, ok := c.load(path)
	if !ok {
		return true
	}
	if c.report(compiler.Format().Run(ctx)) {
		return true
	}
	if write == "" {
		fmt.Fprint(c.stdout, ctx.Canonical)
		return true
	}
	if ctx.Canonical == ctx.SourceCode {
		return true
	}
	if err := os.WriteFile(path, []byte(ctx.Canonical), 0644); err != nil {
		c.fail("Error writing file: %s", err)
	}
	return true
}

func (c *cli) handleBuild() bool {
	if c.args[1] != "build" {
		return false
	}
	path, out, err := parseFlags(c.args[2:], "-o", true)
	if err != nil {
		c.fail("build: %s", err)
		return true
	}
	ctx, ok := c.load(path)
	if !ok {
		return true
	}
	cfg := ctx.Settings()

	bg := context.Background()
	var store *cache.Store
	if cfg.Cache.Enabled {
		store, err = cache.Open(bg, cfg.ResolvePath(cfg.Cache.Path))
		if err != nil {
			c.fail("Cache error: %s", err)
			return true
		}
		defer store.Close()
	}

	res, err := compiler.CachedBuild(bg, store, ctx.SourceCode, path, cfg)
	if err != nil {
		c.fail("Cache error: %s", err)
		return true
	}
	if c.report(res.Context) {
		return true
	}

	if out == "" {
		out = utils.HostOutputPath(cfg.ResolvePath(cfg.Output.Dir), path)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		c.fail("Error creating output directory: %s", err)
		return true
	}
	if err := os.WriteFile(out, []byte(res.Context.HostCode), 0644); err != nil {
		c.fail("Error writing output: %s", err)
		return true
	}

	switch {
	case res.Cached:
		fmt.Fprintf(c.stdout, "Built %s -> %s (cached %s)\n", path, out, res.BuildID)
	case res.BuildID != "":
		fmt.Fprintf(c.stdout, "Built %s -> %s (%s)\n", path, out, res.BuildID)
	default:
		fmt.Fprintf(c.stdout, "Built %s -> %s\n", path, out)
	}
	return true
}

func (c *cli) handleCache() bool {
	if c.args[1] != "cache" {
		return false
	}
	if len(c.args) != 3 || (c.args[2] != "ls" && c.args[2] != "clear") {
		c.fail("Usage: samplc cache ls|clear")
		return true
	}

	cfg, err := config.Resolve(".")
	if err != nil {
		c.fail("Config error: %s", err)
		return true
	}
	bg := context.Background()
	store, err := cache.Open(bg, cfg.ResolvePath(cfg.Cache.Path))
	if err != nil {
		c.fail("Cache error: %s", err)
		return true
	}
	defer store.Close()

	if c.args[2] == "clear" {
		n, err := store.Clear(bg)
		if err != nil {
			c.fail("Cache error: %s", err)
			return true
		}
		fmt.Fprintf(c.stdout, "Removed %d cached builds\n", n)
		return true
	}

	entries, err := store.List(bg)
	if err != nil {
		c.fail("Cache error: %s", err)
		return true
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "No cached builds")
		return true
	}
	for _, e := range entries {
		key := e.Key
		if len(key) > 12 {
			key = key[:12]
		}
		fmt.Fprintf(c.stdout, "%s  %s  %s  %d bytes\n",
			e.BuildID, e.CreatedAt.Local().Format(time.DateTime), key, len(e.Kotlin))
	}
	return true
}
