// cfadump inspects netCDF files through the CF compressed-array
// decoders: it lists variables, prints attributes, and dumps variables
// decoded through masking, unpacking and compression by convention.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/codec"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/source"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

var (
	verbose  bool
	selector string
	noMask   bool
	noUnpack bool
)

func main() {
	root := &cobra.Command{
		Use:           "cfadump",
		Short:         "inspect netCDF variables through CF decompression",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decode diagnostics")

	ls := &cobra.Command{
		Use:   "ls FILE",
		Short: "list the variables of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runLs,
	}
	attrs := &cobra.Command{
		Use:   "attrs FILE VAR",
		Short: "print a variable's attributes",
		Args:  cobra.ExactArgs(2),
		RunE:  runAttrs,
	}
	describe := &cobra.Command{
		Use:   "describe FILE VAR",
		Short: "show how a variable is compressed",
		Args:  cobra.ExactArgs(2),
		RunE:  runDescribe,
	}
	dump := &cobra.Command{
		Use:   "dump FILE VAR",
		Short: "print a variable's decoded values",
		Args:  cobra.ExactArgs(2),
		RunE:  runDump,
	}
	dump.Flags().StringVarP(&selector, "select", "s", "",
		"orthogonal selection, one field per axis: '0:2,:,3'")
	dump.Flags().BoolVar(&noMask, "no-mask", false, "skip masking attributes")
	dump.Flags().BoolVar(&noUnpack, "no-unpack", false, "skip scale_factor and add_offset")

	root.AddCommand(ls, attrs, describe, dump)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cfadump:", err)
		os.Exit(1)
	}
}

func logger() *util.Logger {
	if !verbose {
		return nil
	}
	l := util.NewLogger()
	l.SetLogLevel(util.LevelInfo)
	return l
}

func runLs(cmd *cobra.Command, args []string) error {
	g, err := source.Open(args[0], source.WithOpenLogger(logger()))
	if err != nil {
		return err
	}
	defer g.Close()
	for _, name := range g.ListVariables() {
		vg, err := g.GetVarGetter(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s(%s)\n", vg.Type(), name, strings.Join(vg.Dimensions(), ", "))
	}
	return nil
}

func runAttrs(cmd *cobra.Command, args []string) error {
	g, err := source.Open(args[0], source.WithOpenLogger(logger()))
	if err != nil {
		return err
	}
	defer g.Close()
	v, err := source.OpenVar(g, args[1])
	if err != nil {
		return err
	}
	attrs := v.Attributes()
	for _, k := range attrs.Keys() {
		val, _ := attrs.Get(k)
		fmt.Printf("%s = %v\n", k, val)
	}
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	g, err := source.Open(args[0], source.WithOpenLogger(logger()))
	if err != nil {
		return err
	}
	defer g.Close()
	ca, found, err := detectCompressed(g, args[1], logger())
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("not compressed by convention")
		return nil
	}
	fmt.Printf("compression: %v\n", ca.CompressionType())
	fmt.Printf("shape: %v\n", ca.Shape())
	fmt.Printf("type: %v\n", ca.Type())
	dims := ca.CompressedDimensions()
	phys := make([]int, 0, len(dims))
	for d := range dims {
		phys = append(phys, d)
	}
	sort.Ints(phys)
	for _, d := range phys {
		fmt.Printf("physical axis %d expands to logical axes %v\n", d, dims[d])
	}
	fmt.Printf("subarrays: %d\n", len(ca.Subarrays()))
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	g, err := source.Open(args[0], source.WithOpenLogger(logger()))
	if err != nil {
		return err
	}
	defer g.Close()
	log := logger()

	var indices []api.Index
	if selector != "" {
		if indices, err = parseSelection(selector); err != nil {
			return err
		}
	}

	ca, found, err := detectCompressed(g, args[1], log)
	if err != nil {
		return err
	}
	var out *ndarray.Array
	if found {
		out, err = ca.Get(indices...)
	} else {
		out, err = dumpPlain(g, args[1], indices, log)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func dumpPlain(g group, name string, indices []api.Index, log *util.Logger) (*ndarray.Array, error) {
	v, err := source.OpenVar(g, name)
	if err != nil {
		return nil, err
	}
	raw, err := api.SourceReadSlice(v)
	if err != nil {
		return nil, err
	}
	block, err := ndarray.FromSlice(v.Type(), raw, v.Shape()...)
	if err != nil {
		return nil, err
	}
	opts := []codec.Option{codec.WithLogger(log)}
	if noMask {
		opts = append(opts, codec.NoMask())
	}
	if noUnpack {
		opts = append(opts, codec.NoUnpack())
	}
	out, err := codec.Decode(block, v.Attributes(), opts...)
	if err != nil {
		return nil, err
	}
	if indices == nil {
		return out, nil
	}
	return out.Subspace(indices...)
}

// parseSelection parses a comma-separated orthogonal selection, one
// field per axis: ':' keeps the axis, 'i' selects one position, 'a:b'
// a half-open span.
func parseSelection(s string) ([]api.Index, error) {
	fields := strings.Split(s, ",")
	out := make([]api.Index, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		switch {
		case f == ":" || f == "":
			out[i] = api.All()
		case strings.Contains(f, ":"):
			parts := strings.SplitN(f, ":", 2)
			begin, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, fmt.Errorf("bad selection field %q", f)
			}
			end, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("bad selection field %q", f)
			}
			out[i] = api.Span(begin, end)
		default:
			p, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("bad selection field %q", f)
			}
			out[i] = api.At(p)
		}
	}
	return out, nil
}
