// Package comment handles line annotation commands
package comment

import (
	"context"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
)

// Cmd represents the comment command
var Cmd = &cobra.Command{
	Use:   "comment",
	Short: "Annotate an ingested XML line",
	Long: `Comment sets an auditor comment on a line, marks it reviewed and
appends the annotation to every movement linked to that line. An empty
--text clears the comment.`,
	Run: commentFunc,
}

var (
	fileID string
	lineID string
	text   string
)

func init() {
	Cmd.Flags().StringVarP(&fileID, "file-id", "f", "", "File id of the line")
	Cmd.Flags().StringVarP(&lineID, "line-id", "l", "", "Line id to annotate")
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Comment text; empty clears the comment")
}

func commentFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if fileID == "" || lineID == "" {
		root.Log.Fatal("--file-id and --line-id are required")
	}

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	var comment *string
	if text != "" {
		comment = &text
	}

	touched, err := sess.State.SetLineComment(fileID, lineID, comment)
	if err != nil {
		root.Log.Fatalf("Error setting comment: %v", err)
	}
	if comment != nil {
		sess.State.Comments.Add(text)
		root.Log.Infof("Comment set, %d linked movements annotated", touched)
	} else {
		root.Log.Info("Comment cleared")
	}

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
}
