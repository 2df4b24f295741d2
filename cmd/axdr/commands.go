package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/axdr"
	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/schema"
	"github.com/wippyai/axdr/sequence"
)

func parseFlags(fs *pflag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *app) loadSchema(path string) (*sequence.Schema, error) {
	if path == "" {
		return nil, errors.New("--schema is required")
	}
	return schema.Load(a.cfg.schemaPath(path))
}

func (a *app) encode(args []string) error {
	var schemaPath, valuesPath, outPath string
	fs := a.newFlagSet("encode")
	fs.StringVarP(&schemaPath, "schema", "s", "", "schema document")
	fs.StringVarP(&valuesPath, "values", "v", "", "values document")
	fs.StringVarP(&outPath, "out", "o", "", "write binary output to file instead of hex to stdout")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if valuesPath == "" {
		return errors.New("--values is required")
	}

	s, err := a.loadSchema(schemaPath)
	if err != nil {
		return err
	}
	values, err := schema.LoadValues(valuesPath)
	if err != nil {
		return err
	}
	rec, err := schema.BuildRecord(s, values)
	if err != nil {
		return err
	}

	data, err := axdr.MarshalLimit(s, rec, a.cfg.BufferSize)
	if err != nil {
		return err
	}
	a.log.Info("encoded", zap.String("schema", s.Name), zap.Int("bytes", len(data)))

	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(a.stdout, hex.EncodeToString(data))
	return err
}

func (a *app) decode(args []string) error {
	var schemaPath, hexInput, inPath, formatName, outPath string
	var asTable bool
	fs := a.newFlagSet("decode")
	fs.StringVarP(&schemaPath, "schema", "s", "", "schema document")
	fs.StringVarP(&hexInput, "hex", "x", "", "payload as hex")
	fs.StringVarP(&inPath, "in", "i", "", "payload file (binary)")
	fs.StringVarP(&formatName, "format", "f", "", "output format: yaml, json or cbor")
	fs.StringVarP(&outPath, "out", "o", "", "write rendered output to file")
	fs.BoolVarP(&asTable, "table", "t", false, "print field offsets as a table")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	format := a.cfg.Format
	if formatName != "" {
		f, err := schema.ParseFormat(formatName)
		if err != nil {
			return err
		}
		format = f
	}

	payload, err := readPayload(hexInput, inPath)
	if err != nil {
		return err
	}
	s, err := a.loadSchema(schemaPath)
	if err != nil {
		return err
	}

	c := codec.AcquireCursor(payload)
	defer c.Release()
	rec, spans, err := s.DecodeSpans(c)
	if err != nil {
		return err
	}
	if rest := c.Remaining(); rest > 0 {
		a.log.Warn("trailing bytes after record", zap.Int("count", rest), zap.Int("offset", c.Position()))
	}

	if asTable {
		printSpans(a.stdout, spans)
		return nil
	}

	out, err := schema.Render(s, rec, format)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err = a.stdout.Write(out)
	return err
}

// readPayload takes exactly one of a hex string or a binary file.
func readPayload(hexInput, inPath string) ([]byte, error) {
	switch {
	case hexInput != "" && inPath != "":
		return nil, errors.New("--hex and --in are mutually exclusive")
	case hexInput != "":
		data, ok := sequence.CoerceBytes(hexInput)
		if !ok {
			return nil, fmt.Errorf("invalid hex payload %q", hexInput)
		}
		return data, nil
	case inPath != "":
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("one of --hex or --in is required")
	}
}

func (a *app) varint(args []string) error {
	var unsigned bool
	var decodeHex string
	fs := a.newFlagSet("varint")
	fs.BoolVarP(&unsigned, "unsigned", "u", false, "treat values as uint32")
	fs.StringVarP(&decodeHex, "decode", "d", "", "decode a hex string of concatenated varints")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if decodeHex != "" {
		return a.decodeVarints(decodeHex, unsigned)
	}
	if fs.NArg() == 0 {
		return errors.New("no values given")
	}

	var buf [codec.MaxVarintLen]byte
	for _, arg := range fs.Args() {
		c := codec.NewCursor(buf[:])
		if unsigned {
			v, err := strconv.ParseUint(arg, 0, 32)
			if err != nil {
				return fmt.Errorf("parse %q: %w", arg, err)
			}
			if err := c.EncodeVarUint(uint32(v)); err != nil {
				return err
			}
		} else {
			v, err := strconv.ParseInt(arg, 0, 32)
			if err != nil {
				return fmt.Errorf("parse %q: %w", arg, err)
			}
			if err := c.EncodeVarint(int32(v)); err != nil {
				return err
			}
		}
		fmt.Fprintf(a.stdout, "%s\t%s\t%d\n", arg, hex.EncodeToString(c.Bytes()), c.Position())
	}
	return nil
}

func (a *app) decodeVarints(hexInput string, unsigned bool) error {
	data, ok := sequence.CoerceBytes(hexInput)
	if !ok {
		return fmt.Errorf("invalid hex %q", hexInput)
	}
	c := codec.NewCursor(data)
	for c.Remaining() > 0 {
		start := c.Position()
		var text string
		if unsigned {
			v, err := c.DecodeVarUint()
			if err != nil {
				return err
			}
			text = strconv.FormatUint(uint64(v), 10)
		} else {
			v, err := c.DecodeVarint()
			if err != nil {
				return err
			}
			text = strconv.FormatInt(int64(v), 10)
		}
		fmt.Fprintf(a.stdout, "%d\t%s\t%s\n", start, hex.EncodeToString(data[start:c.Position()]), text)
	}
	return nil
}

func (a *app) jsonSchema(args []string) error {
	var outPath string
	fs := a.newFlagSet("jsonschema")
	fs.StringVarP(&outPath, "out", "o", "", "write the JSON Schema to file")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	data, err := schema.JSONSchema()
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write json schema: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}
