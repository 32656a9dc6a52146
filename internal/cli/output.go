// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-algid.
//
// go-algid is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/health"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatTable OutputFormat = "table"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// identifier renders the bound identifier of a resolution
func identifier(r algid.Resolution) string {
	if r.Mechanism != mechanism.Invalid {
		return fmt.Sprintf("%s (0x%x)", r.Mechanism, uint(r.Mechanism))
	}
	if r.OIDTag != oidtag.Unknown {
		if r.OID != "" {
			return fmt.Sprintf("%s (%d, %s)", r.OIDTag, uint32(r.OIDTag), r.OID)
		}
		return fmt.Sprintf("%s (%d)", r.OIDTag, uint32(r.OIDTag))
	}
	return "-"
}

// PrintResolutions prints resolved algorithms
func (p *Printer) PrintResolutions(results []algid.Resolution) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"algorithms": results,
		})
	case OutputFormatTable:
		if len(results) == 0 {
			fmt.Fprintln(p.writer, "No algorithms found")
			return nil
		}
		fmt.Fprintf(p.writer, "%-4s %-28s %-12s %-10s %s\n", "SLOT", "ALGORITHM", "FAMILY", "SPACE", "IDENTIFIER")
		fmt.Fprintln(p.writer, strings.Repeat("-", 96))
		for _, r := range results {
			fmt.Fprintf(p.writer, "%-4d %-28s %-12s %-10s %s\n",
				r.Slot, r.Name, r.Family, r.Space, identifier(r))
		}
		return nil
	case OutputFormatText:
		if len(results) == 0 {
			fmt.Fprintln(p.writer, "No algorithms found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(p.writer, "%s: %s %s\n", r.Name, r.Space, identifier(r))
			if r.KeyUsage != 0 {
				fmt.Fprintf(p.writer, "  Key usage: %s\n", r.KeyUsage)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintUsage prints the key usage mask of an algorithm
func (p *Printer) PrintUsage(name string, flags mechanism.Flags) error {
	switch p.format {
	case OutputFormatJSON:
		names := flags.Names()
		if names == nil {
			names = []string{}
		}
		return p.printJSON(map[string]interface{}{
			"algorithm": name,
			"key_usage": uint(flags),
			"flags":     names,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "Algorithm: %s\n", name)
		fmt.Fprintf(p.writer, "Key usage: 0x%x\n", uint(flags))
		if flags == 0 {
			fmt.Fprintln(p.writer, "  (none)")
			return nil
		}
		for _, n := range flags.Names() {
			fmt.Fprintf(p.writer, "  - %s\n", n)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintOIDTag prints an OID tag and the algorithms bound to it
func (p *Printer) PrintOIDTag(oid string, tag oidtag.Tag, algorithms []string) error {
	switch p.format {
	case OutputFormatJSON:
		if algorithms == nil {
			algorithms = []string{}
		}
		return p.printJSON(map[string]interface{}{
			"oid":        oid,
			"tag":        uint32(tag),
			"name":       tag.String(),
			"algorithms": algorithms,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "OID:        %s\n", oid)
		fmt.Fprintf(p.writer, "Tag:        %s (%d)\n", tag, uint32(tag))
		if len(algorithms) == 0 {
			fmt.Fprintln(p.writer, "Algorithms: none")
			return nil
		}
		fmt.Fprintf(p.writer, "Algorithms: %s\n", strings.Join(algorithms, ", "))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDER prints a DER encoded AlgorithmIdentifier
func (p *Printer) PrintDER(name string, der []byte) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"algorithm": name,
			"der":       fmt.Sprintf("%x", der),
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "%x\n", der)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintChecks prints consistency check results and their aggregate status
func (p *Printer) PrintChecks(status health.Status, results []health.CheckResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": status,
			"checks": results,
		})
	case OutputFormatTable:
		fmt.Fprintf(p.writer, "%-14s %-10s %s\n", "CHECK", "STATUS", "MESSAGE")
		fmt.Fprintln(p.writer, strings.Repeat("-", 64))
		for _, r := range results {
			fmt.Fprintf(p.writer, "%-14s %-10s %s\n", r.Name, r.Status, r.Message)
		}
		fmt.Fprintf(p.writer, "\nStatus: %s\n", status)
		return nil
	case OutputFormatText:
		for _, r := range results {
			fmt.Fprintf(p.writer, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
			if r.Error != "" {
				fmt.Fprintf(p.writer, "  %s\n", r.Error)
			}
		}
		fmt.Fprintf(p.writer, "Status: %s\n", status)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as indented JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
