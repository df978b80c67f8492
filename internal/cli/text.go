package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lrclab/internal/clipboard"
	"lrclab/internal/engine"

	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Manage the reusable text library",
}

var textAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a text entry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTextAdd,
}

var textEditCmd = &cobra.Command{
	Use:   "edit [index] [text...]",
	Short: "Replace an entry's text",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTextEdit,
}

var textRmCmd = &cobra.Command{
	Use:   "rm [index]",
	Short: "Delete an entry and clear segments referencing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextRm,
}

var textMvCmd = &cobra.Command{
	Use:   "mv [from] [to]",
	Short: "Move an entry to a new position",
	Args:  cobra.ExactArgs(2),
	RunE:  runTextMv,
}

var textPasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Bulk-add entries from the clipboard, one per line",
	Args:  cobra.NoArgs,
	RunE:  runTextPaste,
}

var textBulkCmd = &cobra.Command{
	Use:   "bulk [file]",
	Short: "Bulk-add entries from a text file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextBulk,
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.AddCommand(textAddCmd)
	textCmd.AddCommand(textEditCmd)
	textCmd.AddCommand(textRmCmd)
	textCmd.AddCommand(textMvCmd)
	textCmd.AddCommand(textPasteCmd)
	textCmd.AddCommand(textBulkCmd)
}

func runTextAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		eng.Library().Add(text)
		fmt.Printf("Added entry %d: %s\n", eng.Library().Len()-1, text)
		return true, nil
	})
}

func runTextEdit(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid entry index %q", args[0])
	}
	text := strings.Join(args[1:], " ")

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		id, err := entryIDAt(eng, index)
		if err != nil {
			return false, err
		}
		eng.Library().Update(id, text)
		fmt.Printf("Updated entry %d\n", index)
		return true, nil
	})
}

func runTextRm(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid entry index %q", args[0])
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		id, err := entryIDAt(eng, index)
		if err != nil {
			return false, err
		}
		cleared, _ := eng.DeleteText(id)
		fmt.Printf("Deleted entry %d", index)
		if cleared > 0 {
			fmt.Printf(" and cleared %d segment(s)", cleared)
		}
		fmt.Println()
		return true, nil
	})
}

func runTextMv(cmd *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid entry index %q", args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid entry index %q", args[1])
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if !eng.Library().Reorder(from, to) {
			return false, fmt.Errorf("entry index out of range (library has %d entries)", eng.Library().Len())
		}
		fmt.Printf("Moved entry %d to position %d\n", from, to)
		return true, nil
	})
}

func runTextPaste(cmd *cobra.Command, args []string) error {
	raw, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	return bulkAdd(raw, "clipboard")
}

func runTextBulk(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return bulkAdd(string(data), args[0])
}

func bulkAdd(raw, source string) error {
	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		ids := eng.Library().BulkAdd(raw)
		if len(ids) == 0 {
			fmt.Printf("No non-empty lines in %s\n", source)
			return false, nil
		}
		fmt.Printf("Added %d entries from %s\n", len(ids), source)
		return true, nil
	})
}

func entryIDAt(eng *engine.Engine, index int) (string, error) {
	entries := eng.Library().Entries()
	if index < 0 || index >= len(entries) {
		return "", fmt.Errorf("entry index %d out of range (0-%d)", index, len(entries)-1)
	}
	return entries[index].ID, nil
}
