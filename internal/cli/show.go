package cli

import (
	"context"
	"fmt"
	"strconv"

	"lrclab/internal/engine"
	"lrclab/internal/lrc"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the segment timeline and text library",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		entries := eng.Library().Entries()

		if tl := eng.Timeline(); tl != nil {
			// entry id -> display index for the text column
			indexByID := make(map[string]int, len(entries))
			for i, entry := range entries {
				indexByID[entry.ID] = i
			}

			rows := make([][]string, 0, tl.Len())
			for i, seg := range tl.Segments() {
				text := ""
				if seg.TextRef != "" {
					if entry, ok := eng.Library().Get(seg.TextRef); ok {
						text = fmt.Sprintf("(%d) %s", indexByID[seg.TextRef], entry.Text)
					}
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					lrc.FormatTimestamp(seg.Start),
					lrc.FormatTimestamp(seg.End),
					text,
				})
			}
			fmt.Println(renderTable(
				[]string{"#", "START", "END", "TEXT"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))
			fmt.Printf("Duration: %s\n\n", lrc.FormatTimestamp(tl.Duration()))
		} else {
			fmt.Println("No video loaded.")
			fmt.Println()
		}

		if len(entries) == 0 {
			fmt.Println("Library is empty.")
			return false, nil
		}
		rows := make([][]string, 0, len(entries))
		for i, entry := range entries {
			rows = append(rows, []string{strconv.Itoa(i), entry.Text})
		}
		fmt.Println(renderTable(
			[]string{"#", "TEXT"},
			rows,
			[]columnAlignment{alignRight, alignLeft},
		))
		return false, nil
	})
}
