// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Memopt reports which memory operation call sites in a set of Go
// packages would be specialized by profile-guided size dispatch, and
// to which sizes.
//
// Usage:
//
//	memopt [-config file.yaml] -profile profile.json packages...
//
// The profile maps function names to a measured entry count and the
// size records observed at each recognized call site, in source
// order per callee:
//
//	{
//	  "functions": {
//	    "example.com/pkg.Encode": {
//	      "count": 120000,
//	      "sites": [
//	        {
//	          "callee": "memcpy",
//	          "total": 118000,
//	          "records": [
//	            {"size": 8, "count": 90000},
//	            {"size": 16, "count": 20000}
//	          ]
//	        }
//	      ]
//	    }
//	  }
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"
	gossa "golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
	"gopkg.in/yaml.v3"

	"github.com/fkuehnel/memopsize/memopt"
	ir "github.com/fkuehnel/memopsize/ssa"
)

var (
	configPath  = flag.String("config", "", "YAML file overriding the default pass configuration")
	profilePath = flag.String("profile", "", "JSON size profile (required)")
	debug       = flag.Int("debug", 0, "pass debug level")
)

func main() {
	flag.Parse()
	if *profilePath == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: memopt [-config file.yaml] -profile profile.json packages...")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	prof, err := loadProfile(*profilePath)
	if err != nil {
		fatal(err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax}, flag.Args()...)
	if err != nil {
		fatal(err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}
	prog, _ := ssautil.AllPackages(pkgs, gossa.InstantiateGenerics)
	prog.Build()

	tli := memopt.DefaultLibFuncs()
	var report []string
	var total memopt.Stats
	for fn := range ssautil.AllFunctions(prog) {
		if fn.Blocks == nil {
			continue
		}
		fp, ok := prof.Functions[fn.String()]
		if !ok {
			continue
		}
		lines, stats := analyzeFunction(fn, fp, &cfg, tli)
		report = append(report, lines...)
		total.Annotated += stats.Annotated
		total.Optimized += stats.Optimized
	}
	sort.Strings(report)
	for _, line := range report {
		fmt.Println(line)
	}
	fmt.Printf("memopt: %d of %d profiled call site(s) would be specialized\n",
		total.Optimized, total.Annotated)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "memopt:", err)
	os.Exit(1)
}

func loadConfig(path string) (memopt.Config, error) {
	cfg := memopt.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

type profile struct {
	Functions map[string]funcProfile `json:"functions"`
}

type funcProfile struct {
	Count uint64        `json:"count"`
	Sites []siteProfile `json:"sites"`
}

type siteProfile struct {
	Callee  string           `json:"callee"`
	Total   uint64           `json:"total"`
	Records []profiledRecord `json:"records"`
}

type profiledRecord struct {
	Size  int64  `json:"size"`
	Count uint64 `json:"count"`
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := new(profile)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// analyzeFunction finds the recognized call sites in fn, pairs them
// with the profile's site records in source order per callee, and
// runs the pass over a model of each site.
func analyzeFunction(fn *gossa.Function, fp funcProfile, cfg *memopt.Config, tli memopt.LibFuncs) ([]string, memopt.Stats) {
	seen := make(map[string]int)
	var lines []string
	var total memopt.Stats
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			call, ok := instr.(*gossa.Call)
			if !ok {
				continue
			}
			callee := call.Common().StaticCallee()
			if callee == nil {
				continue
			}
			op, valued, known := modelOp(callee.Name())
			if !known {
				continue
			}
			args := call.Common().Args
			if len(args) < 3 {
				continue
			}
			if _, isConst := args[2].(*gossa.Const); isConst {
				continue
			}

			idx := seen[callee.Name()]
			seen[callee.Name()]++
			sp, ok := siteRecords(fp, callee.Name(), idx)
			if !ok {
				continue
			}

			pos := fn.Prog.Fset.Position(call.Pos())
			line, stats := analyzeSite(fn.String(), pos.String(), op, valued, callee.Name(), sp, fp.Count, cfg, tli)
			total.Annotated += stats.Annotated
			total.Optimized += stats.Optimized
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, total
}

// modelOp maps a callee name to the model operation for it.
func modelOp(name string) (op ir.Op, valued, known bool) {
	switch name {
	case "memcpy":
		return ir.OpMemcpy, false, true
	case "memmove":
		return ir.OpMemmove, false, true
	case "memset":
		return ir.OpMemset, false, true
	case "memcmp", "bcmp":
		return ir.OpStaticCall, true, true
	}
	return 0, false, false
}

// siteRecords returns the idx'th profiled site for the given callee.
func siteRecords(fp funcProfile, callee string, idx int) (siteProfile, bool) {
	n := 0
	for _, sp := range fp.Sites {
		if sp.Callee != callee {
			continue
		}
		if n == idx {
			return sp, true
		}
		n++
	}
	return siteProfile{}, false
}

// analyzeSite models one call site as a single-block function,
// attaches the profile, and runs the pass. The returned line is empty
// when the site would be left alone.
func analyzeSite(fnName, pos string, op ir.Op, valued bool, callee string, sp siteProfile, count uint64, cfg *memopt.Config, tli memopt.LibFuncs) (string, memopt.Stats) {
	f := ir.NewFunc(fnName)
	f.Pass = &ir.Pass{Name: "memopt", Debug: *debug}
	entry := f.NewBlock(ir.BlockPlain)
	f.Entry = entry
	mem := entry.NewValue0(ir.OpInitMem, ir.TypeMem)
	dst := entry.NewValue0(ir.OpArg, ir.TypeUintptr)
	src := entry.NewValue0(ir.OpArg, ir.TypeUintptr)
	n := entry.NewValue0(ir.OpArg, ir.TypeInt64)

	resultType := ir.TypeVoid
	if valued {
		resultType = ir.TypeInt64
	}
	site := entry.NewValue0(op, resultType)
	if op == ir.OpStaticCall {
		site.Aux = &ir.CallSym{Name: callee}
	}
	site.AddArg3(dst, src, n)

	recs := make([]ir.SizeRecord, len(sp.Records))
	for i, r := range sp.Records {
		recs[i] = ir.SizeRecord{Size: r.Size, Count: r.Count}
	}
	site.Prof = &ir.ValueProfile{Records: recs, Total: sp.Total}

	exit := f.NewBlock(ir.BlockExit)
	exit.SetControl(mem)
	entry.AddEdgeTo(exit)

	bfi := memopt.NewBlockFreqInfo(f)
	bfi.SetBlockCount(entry, count)
	sink := &memopt.RemarkCollector{}
	stats, changed := memopt.Opt(f, cfg, bfi, tli, sink)
	if !changed {
		return "", stats
	}
	if *debug > 0 {
		w := &memopt.RemarkWriter{W: os.Stderr}
		for _, r := range sink.Remarks {
			w.Emit(r)
		}
	}

	r := sink.Remarks[0]
	sizes := make([]int64, len(f.Entry.Cases))
	copy(sizes, f.Entry.Cases)
	return fmt.Sprintf("%s: %s: %s: specialize %d version(s) for sizes %v, covering %d of %d",
		pos, fnName, r.Name, r.Versions, sizes, r.Count, r.Total), stats
}
