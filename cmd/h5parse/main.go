// h5parse dumps the structure of an HDF5 file: the superblock, the root
// group's links, each object's header messages, and optionally the
// decoded values of one data object.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/batchatco/go-native-hdf5/hdf5"
)

type args struct {
	File    string `arg:"positional,required" help:"HDF5 file to inspect"`
	Data    string `arg:"-d,--data" help:"print the values of the named data object"`
	Verbose bool   `arg:"-v,--verbose" help:"enable verbose logging"`
}

func (args) Description() string {
	return "h5parse dumps the structure of an HDF5 file"
}

func main() {
	var a args
	arg.MustParse(&a)
	if a.Verbose {
		hdf5.SetLogLevel(3)
	}
	if err := run(a); err != nil {
		if errors.Is(err, hdf5.ErrUnsupported) {
			fmt.Fprintln(os.Stderr, "h5parse: file uses an unsupported feature:", err)
		} else {
			fmt.Fprintln(os.Stderr, "h5parse:", err)
		}
		os.Exit(1)
	}
}

func run(a args) error {
	f, err := hdf5.Open(a.File)
	if err != nil {
		return errors.Wrap(err, a.File)
	}
	defer f.Close()

	sb := f.Superblock()
	fmt.Printf("superblock: version %d, base address %d, end of file %d\n",
		sb.Version, sb.BaseAddress, sb.EndOfFile)

	names := f.ListObjects()
	fmt.Printf("root group: %d links\n", len(names))
	for _, name := range names {
		if err := printObject(f, name); err != nil {
			return errors.Wrapf(err, "object %q", name)
		}
	}

	if a.Data != "" {
		if err := printData(f, a.Data); err != nil {
			return errors.Wrapf(err, "data object %q", a.Data)
		}
	}
	return nil
}

func printObject(f *hdf5.File, name string) error {
	oh, err := f.GetObjectHeader(name)
	if err != nil {
		return err
	}
	kinds := lo.Map(oh.Messages(), func(m *hdf5.HeaderMessage, _ int) string {
		return m.Kind()
	})
	fmt.Printf("  %s: %s\n", name, strings.Join(kinds, ", "))
	for _, m := range oh.Messages() {
		switch {
		case m.Dataspace != nil:
			fmt.Printf("    dimensions %s\n", dimString(m.Dataspace.DimensionSizes))
		case m.Datatype != nil:
			fmt.Printf("    %s, %d bytes per element\n",
				m.Datatype.ClassName(), m.Datatype.Size())
		case m.SymbolTable != nil:
			fmt.Printf("    group B-tree at %d, heap at %d\n",
				m.SymbolTable.BTreeAddress, m.SymbolTable.LocalHeapAddress)
		case m.ModificationTime != nil:
			fmt.Printf("    modified %s\n", m.ModificationTime.Time().UTC())
		}
	}
	return nil
}

func printData(f *hdf5.File, name string) error {
	d, err := f.GetDataObject(name)
	if err != nil {
		return err
	}
	fmt.Printf("%s%s = %v\n", name, dimString(d.Dimensions), d.Interface())
	return nil
}

func dimString(dims []uint64) string {
	parts := lo.Map(dims, func(d uint64, _ int) string {
		return fmt.Sprint(d)
	})
	return "[" + strings.Join(parts, "x") + "]"
}
