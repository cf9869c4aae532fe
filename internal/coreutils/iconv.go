// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// iconvCommand implements iconv with the IANA character set registry.
type iconvCommand struct {
	commandInfo
}

// newIconvCommand creates a new iconv command.
func newIconvCommand() *iconvCommand {
	return &iconvCommand{commandInfo{
		name:     "iconv",
		synopsis: "Convert text from one character encoding to another",
		usage:    "iconv -f FROM -t TO FILE",
		description: "Decode FILE from the FROM encoding and re-encode it as TO. Encodings are\n" +
			"IANA names such as UTF-8, ISO-8859-1 or windows-1252. Characters TO cannot\n" +
			"represent are replaced.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "from-code", ShortName: "f", Description: "encoding of the input", TakesValue: true},
			{Name: "to-code", ShortName: "t", Description: "encoding of the output", TakesValue: true},
		},
	}}
}

// Run executes the iconv command.
func (c *iconvCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	from := fs.StringP("from-code", "f", "", "source encoding")
	to := fs.StringP("to-code", "t", "", "target encoding")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if *from == "" || *to == "" || len(files) == 0 {
		return Failure("iconv: usage: iconv -f FROM -t TO FILE")
	}

	src, err := lookupEncoding(*from)
	if err != nil {
		return Failuref("iconv: %v", err)
	}
	dst, err := lookupEncoding(*to)
	if err != nil {
		return Failuref("iconv: %v", err)
	}
	data, err := fsys.ReadBytes(files[len(files)-1])
	if err != nil {
		return Failuref("iconv: %v", err)
	}

	decoded, err := src.NewDecoder().Bytes(data)
	if err != nil {
		return Failuref("iconv: cannot convert from %s: %v", *from, err)
	}
	encoded, err := encoding.ReplaceUnsupported(dst.NewEncoder()).Bytes(decoded)
	if err != nil {
		return Failuref("iconv: cannot convert to %s: %v", *to, err)
	}
	return Output(display(string(encoded)))
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("conversion from/to '%s' is not supported", name)
	}
	if enc == nil {
		return nil, fmt.Errorf("'%s' is not supported", name)
	}
	return enc, nil
}
