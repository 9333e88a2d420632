package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/crucial707/file-comparator/cmd/cli/config"
	"github.com/crucial707/file-comparator/cmd/cli/output"
)

// InitCompare registers the comparison commands on the root command.
func InitCompare(rootCmd *cobra.Command) {
	rootCmd.AddCommand(compareCmd(), listCmd(), deleteCmd())
}

// compareCmd uploads two local files and prints the unified diff. With
// --save, the result is also stored server-side.
func compareCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two local files",
		Long:  "Upload two files to the File Comparator API and print the unified diff between them.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.LoadToken()
			if token == "" {
				return fmt.Errorf("not logged in; run: filecmp login")
			}

			result, err := postCompare(token, args[0], args[1])
			if err != nil {
				return err
			}

			if result.Diff == "" {
				fmt.Println("Files are identical.")
			} else {
				fmt.Print(result.Diff)
			}

			if save {
				if err := postSave(token, result); err != nil {
					return fmt.Errorf("failed to save comparison: %w", err)
				}
				fmt.Println("Comparison saved.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the comparison to your account")
	return cmd
}

// listCmd prints the user's saved comparisons as a table, newest first.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved comparisons",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.LoadToken()
			if token == "" {
				return fmt.Errorf("not logged in; run: filecmp login")
			}

			req, err := http.NewRequest("GET", config.APIURL()+"/api/my-comparisons", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(body))
			}

			var comparisons []struct {
				ID        int       `json:"id"`
				Filename1 string    `json:"filename1"`
				Filename2 string    `json:"filename2"`
				CreatedAt time.Time `json:"created_at"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&comparisons); err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(comparisons))
			for _, c := range comparisons {
				rows = append(rows, table.Row{
					c.ID, c.Filename1, c.Filename2, c.CreatedAt.Format(time.RFC3339),
				})
			}
			output.RenderTable(table.Row{"ID", "File 1", "File 2", "Created"}, rows)
			return nil
		},
	}
}

// deleteCmd removes one saved comparison by id.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.LoadToken()
			if token == "" {
				return fmt.Errorf("not logged in; run: filecmp login")
			}

			req, err := http.NewRequest("DELETE", config.APIURL()+"/api/comparison/"+args[0], nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(body))
			}

			fmt.Println("Comparison deleted.")
			return nil
		},
	}
}

// compareResult mirrors the /api/compare response body.
type compareResult struct {
	Filename1 string `json:"filename1"`
	Filename2 string `json:"filename2"`
	Diff      string `json:"diff"`
}

func postCompare(token, path1, path2 string) (*compareResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for field, path := range map[string]string{"file1": path1, "file2": path2} {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		part, err := mw.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, err
		}
		f.Close()
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", config.APIURL()+"/api/compare", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	var result compareResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func postSave(token string, result *compareResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", config.APIURL()+"/api/save-comparison", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(body))
	}
	return nil
}
