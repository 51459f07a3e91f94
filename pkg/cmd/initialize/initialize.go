/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	var root string
	var force bool

	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Write a default configuration and create the notes root.",
		Long: heredoc.Doc(`
			This command writes a configuration file with default values and
			creates the notes root folder if it does not exist yet.

			Example:
			  sidenotes init --root ~/notes
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default(s.Home)
			if path := s.Config.Path(); path != "" {
				cfg.SetPath(path)
			}
			if root != "" {
				cfg.RootFolder = root
			}

			if _, err := os.Stat(cfg.Path()); err == nil && !force {
				return fmt.Errorf("config %s already exists, use --force to overwrite it", cfg.Path())
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			if err := cfg.Save(); err != nil {
				return err
			}
			if err := cfg.EnsureRoot(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nNotes root: %s\n", cfg.Path(), cfg.RootFolder)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Notes root folder (defaults to ~/.sidenotes)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
