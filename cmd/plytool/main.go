package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/meshkit/goply/reader"
	"github.com/meshkit/goply/schema"
	"github.com/meshkit/goply/writer"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to PLY file")
		info        = flag.Bool("info", false, "Print header summary and exit")
		convertOut  = flag.String("convert", "", "Re-encode the document to this path")
		modeName    = flag.String("mode", "binary_le", "Target storage mode: ascii|binary_le|binary_be|native")
		previewOut  = flag.String("preview", "", "Render a PNG point preview to this path")
		previewSize = flag.Int("size", 512, "Preview image size in pixels")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Verbose reader/writer logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: plytool -in <file.ply> -info")
		fmt.Fprintln(os.Stderr, "       plytool -in <file.ply> -convert <out.ply> [-mode ascii|binary_le|binary_be|native]")
		fmt.Fprintln(os.Stderr, "       plytool -in <file.ply> -preview <out.png> [-size N]")
		fmt.Fprintln(os.Stderr, "       plytool -in <file.ply> -i  (interactive mode)")
		os.Exit(1)
	}

	if *debug {
		l, err := zap.NewDevelopment()
		if err == nil {
			reader.SetLogger(l)
			writer.SetLogger(l)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch {
	case *info:
		err = printInfo(*inFile)
	case *convertOut != "":
		err = convert(*inFile, *convertOut, *modeName)
	case *previewOut != "":
		err = preview(*inFile, *previewOut, *previewSize)
	default:
		err = printInfo(*inFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseMode(name string) (schema.StorageMode, error) {
	switch name {
	case "ascii":
		return schema.ASCII, nil
	case "binary_le":
		return schema.BinaryLittleEndian, nil
	case "binary_be":
		return schema.BinaryBigEndian, nil
	case "native":
		return schema.BinaryNative, nil
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

func openAndParse(path string) (*reader.Reader, *schema.Header, error) {
	r, err := reader.Open(path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	hdr, err := r.ParseHeader()
	if err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("parse header: %w", err)
	}
	return r, hdr, nil
}

func printInfo(path string) error {
	r, hdr, err := openAndParse(path)
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Printf("Document: %s\n", path)
	fmt.Printf("Format: %s %s\n", hdr.Format, hdr.Version)
	for _, c := range hdr.Comments {
		fmt.Printf("Comment: %s\n", c)
	}
	for _, o := range hdr.ObjInfo {
		fmt.Printf("Obj info: %s\n", o)
	}
	fmt.Printf("\nElements:\n")
	for _, e := range hdr.Elements {
		fmt.Printf("  %s (%d)\n", e.Name, e.Count)
		for _, p := range e.Properties {
			if p.IsList {
				fmt.Printf("    %s: list %s of %s\n", p.Name, p.LengthType, p.Type)
			} else {
				fmt.Printf("    %s: %s\n", p.Name, p.Type)
			}
		}
	}
	return nil
}

// convert re-encodes a document by streaming every value straight from the
// reader's callbacks into the writer: for list properties the length arrives
// first (ValueIndex -1), which is exactly the order the writer expects.
func convert(inPath, outPath, modeName string) error {
	mode, err := parseMode(modeName)
	if err != nil {
		return err
	}

	r, hdr, err := openAndParse(inPath)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := writer.Create(outPath, mode, nil)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer w.Close()

	for _, c := range hdr.Comments {
		if err := w.AddComment(c); err != nil {
			return err
		}
	}
	for _, o := range hdr.ObjInfo {
		if err := w.AddObjInfo(o); err != nil {
			return err
		}
	}
	for _, e := range hdr.Elements {
		if err := w.AddElement(e.Name, e.Count); err != nil {
			return err
		}
		for _, p := range e.Properties {
			if p.IsList {
				err = w.AddListProperty(p.Name, p.LengthType, p.Type)
			} else {
				err = w.AddProperty(p.Name, p.Type)
			}
			if err != nil {
				return err
			}
		}
		for _, p := range e.Properties {
			if _, err := r.OnValue(e.Name, p.Name, func(arg reader.Argument) error {
				return w.Write(arg.Value)
			}); err != nil {
				return err
			}
		}
	}

	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := r.Read(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	fmt.Printf("Wrote %s (%s)\n", outPath, mode)
	return nil
}
