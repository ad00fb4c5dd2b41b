// dynshape classifies the shapes of the operators described in YAML files and reports the kernels to compile:
// the classified groups and the tiling cases of each group.
//
// Usage:
//
//	dynshape [-platform=ascend910] [-check=4x16,16] [-text] operator.yaml...
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/dynshape"
	"github.com/gomlx/dynshape/types/platform"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagPlatform = flag.String("platform", dynshape.DefaultPlatform,
		fmt.Sprintf("Platform preset to generate the tiling cases for, one of %q.", platform.PresetNames()))
	flagCores = flag.Int("cores", 0, "If > 0, overrides the number of cores of the platform.")
	flagCheck = flag.String("check", "", "Runtime dimensions of the inputs, to report the group that handles them: "+
		"inputs separated by commas, dimensions by 'x'. E.g.: -check=4x16,16")
	flagText = flag.Bool("text", false, "Print the plain text plan instead of tables.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing operator description file(s). See 'dynshape -help'")
		os.Exit(1)
	}
	p := must.M1(platform.Preset(*flagPlatform))
	if *flagCores > 0 {
		p = must.M1(p.WithCoreNum(*flagCores))
	}
	var runtime [][]int
	if *flagCheck != "" {
		runtime = must.M1(parseRuntime(*flagCheck))
	}

	var failed bool
	for _, filePath := range args {
		if err := run(filePath, p, runtime); err != nil {
			klog.Errorf("%+v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// run classifies the operator in filePath and prints its report.
func run(filePath string, p *platform.Platform, runtime [][]int) error {
	op, err := loadOperator(filePath)
	if err != nil {
		return err
	}
	b, err := op.Builder()
	if err != nil {
		return err
	}
	plan, err := b.WithPlatform(p).Build()
	if err != nil {
		return err
	}
	if *flagText {
		if err := plan.Write(os.Stdout); err != nil {
			return err
		}
	} else {
		report(plan)
	}
	if runtime != nil {
		reportCheck(plan, runtime)
	}
	return nil
}
