package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reflint/reflint/internal/cache"
	"github.com/reflint/reflint/internal/config"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/lexer"
	"github.com/reflint/reflint/internal/lint"
	"github.com/reflint/reflint/internal/parser"
	"github.com/reflint/reflint/internal/pipeline"
	"github.com/reflint/reflint/internal/prettyprinter"
)

var (
	configPath = flag.String("config", "", "path to .reflint.yaml (default: ./"+config.ConfigFileName+")")
	noColor    = flag.Bool("no-color", false, "disable colored output")
	noCache    = flag.Bool("no-cache", false, "disable the result cache")
	jsonOut    = flag.Bool("json", false, "emit findings as JSON")
	explain    = flag.Bool("explain", false, "print the offending signature under each finding")
	cachePath  = flag.String("cache-path", "", "result cache location (default: user cache dir)")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: reflint [flags] <files or directories>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	cfgFile := *configPath
	if cfgFile == "" {
		cfgFile = config.ConfigFileName
	}
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflint: %v\n", err)
		return 2
	}

	files, err := collectFiles(flag.Args(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflint: %v\n", err)
		return 2
	}

	store := openCache(cfg)
	if store != nil {
		defer store.Close()
	}

	var all []*diagnostics.Diagnostic
	signatures := make(map[string]string) // diagnostic key -> rendered signature
	for _, path := range files {
		diags, err := lintFile(path, store, signatures)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reflint: %v\n", err)
			return 2
		}
		all = append(all, diags...)
	}

	all = applyConfig(all, cfg)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].File != all[j].File {
			return all[i].File < all[j].File
		}
		if all[i].Token.Line != all[j].Token.Line {
			return all[i].Token.Line < all[j].Token.Line
		}
		return all[i].Token.Column < all[j].Token.Column
	})

	if *jsonOut {
		printJSON(all)
	} else {
		printText(all, signatures)
	}

	if len(all) > 0 {
		return 1
	}
	return 0
}

func openCache(cfg *config.Config) *cache.Cache {
	if *noCache || !cfg.CacheEnabled() {
		return nil
	}
	path := *cachePath
	if path == "" {
		path = cfg.Cache.Path
	}
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "reflint: cache disabled: %v\n", err)
			return nil
		}
	}
	store, err := cache.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflint: cache disabled: %v\n", err)
		return nil
	}
	return store
}

func collectFiles(args []string, cfg *config.Config) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || excluded(path, cfg) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, config.SourceFileExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func excluded(path string, cfg *config.Config) bool {
	for _, pattern := range cfg.Exclude {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

func lintFile(path string, store *cache.Cache, signatures map[string]string) ([]*diagnostics.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hash := cache.FileHash(data)

	if store != nil && !*explain {
		if diags, hit, err := store.Get(path, hash); err == nil && hit {
			return diags, nil
		}
	}

	ctx := &pipeline.Context{FilePath: path, SourceCode: string(data)}
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&lint.LintProcessor{},
	).Run(ctx)

	if *explain {
		for _, d := range ctx.Diagnostics {
			if d.Code != diagnostics.LintNeedlessLifetimes {
				continue
			}
			for _, fn := range ctx.Decls {
				if fn.Token.Line == d.Token.Line && fn.Token.Column == d.Token.Column {
					signatures[d.File+":"+d.Key()] = prettyprinter.Signature(fn)
				}
			}
		}
	}

	if store != nil {
		if err := store.Put(path, hash, ctx.Diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "reflint: cache write failed: %v\n", err)
		}
	}
	return ctx.Diagnostics, nil
}

// applyConfig drops findings for disabled checks and promotes severities.
// Parse errors always pass through.
func applyConfig(diags []*diagnostics.Diagnostic, cfg *config.Config) []*diagnostics.Diagnostic {
	out := diags[:0]
	for _, d := range diags {
		if d.Code == diagnostics.LintNeedlessLifetimes {
			switch cfg.CheckLevel(config.CheckNeedlessLifetimes) {
			case config.LevelOff:
				continue
			case config.LevelError:
				d.Severity = diagnostics.SeverityError
			}
		}
		out = append(out, d)
	}
	return out
}

func printText(diags []*diagnostics.Diagnostic, signatures map[string]string) {
	for _, d := range diags {
		sev := d.Severity.String()
		if d.Severity == diagnostics.SeverityWarning {
			sev = colorize(ansiYellow, sev)
		} else {
			sev = colorize(ansiRed, sev)
		}
		fmt.Printf("%s:%d:%d: %s[%s]: %s\n",
			d.File, d.Token.Line, d.Token.Column, sev, d.Code, d.Message)
		if sig, ok := signatures[d.File+":"+d.Key()]; ok {
			fmt.Printf("  note: %s\n", colorize(ansiDim, sig))
		}
	}
}

type jsonFinding struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func printJSON(diags []*diagnostics.Diagnostic) {
	findings := make([]jsonFinding, 0, len(diags))
	for _, d := range diags {
		findings = append(findings, jsonFinding{
			File:     d.File,
			Line:     d.Token.Line,
			Column:   d.Token.Column,
			Code:     string(d.Code),
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(findings)
}
