package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/taskio/internal/netx"
	"github.com/spf13/cobra"
)

// uploadFile is a test seam for netx.UploadToPresignedURL.
var uploadFile = netx.UploadToPresignedURL

func (a *App) attachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <id> <file>",
		Short: "Upload a file and attach it to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			taskID, path := args[0], args[1]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			fi, err := f.Stat()
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			ticket, err := a.client.RequestUpload(ctx, taskID, filepath.Base(path))
			cancel()
			if err != nil {
				return err
			}

			if err := uploadFile(cmd.Context(), ticket.UploadURL, f, fi.Size()); err != nil {
				return err
			}

			ctx, cancel = a.withTimeout(cmd.Context())
			defer cancel()
			if err := a.client.CompleteUpload(ctx, ticket.AttachmentID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s Attached %s (%d bytes)\n", okMark, filepath.Base(path), fi.Size())
			return nil
		},
	}
}
