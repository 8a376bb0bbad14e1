// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"chaintask/internal/tasks"
	"chaintask/internal/tasksync"
)

const (
	// Separator is the separator line around the contract header.
	Separator = "------------"

	boxDone = "[x]"
	boxOpen = "[ ]"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {DESCRIPTION}\n" (4-wide right-aligned number, two spaces, box, description)
func FormatTask(w io.Writer, num int, task tasks.Task) {
	box := boxOpen
	if task.Completed {
		box = boxDone
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeDescription(task.Description))
}

// FormatTasks formats every task, numbered from 1.
func FormatTasks(w io.Writer, list tasks.Collection) {
	for i, task := range list {
		FormatTask(w, i+1, task)
	}
}

// FormatContractHeader formats the contract section header.
func FormatContractHeader(w io.Writer, s tasksync.State) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, s.AddressOrPlaceholder())
	fmt.Fprintln(w, Separator)
}

// FormatStatus formats the status block: contract, loading flags and counts.
func FormatStatus(w io.Writer, s tasksync.State, account, signer string) {
	fmt.Fprintf(w, "contract:  %s\n", s.AddressOrPlaceholder())
	fmt.Fprintf(w, "account:   %s\n", orNone(account))
	fmt.Fprintf(w, "signer:    %s\n", orNone(signer))

	switch {
	case !s.ContractResolved:
		fmt.Fprintln(w, "tasks:     (contract not deployed)")
	case !s.Loaded:
		fmt.Fprintln(w, "tasks:     (not loaded)")
	default:
		done := 0
		for _, t := range s.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(w, "tasks:     %d (%d completed)\n", len(s.Tasks), done)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// normalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(empty)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(empty)"
	}
	return desc
}
