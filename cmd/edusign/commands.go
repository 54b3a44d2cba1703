package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"edusign/internal/badge"
)

// --- badges ---

func (c *cli) badgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Manage the badge wallet",
	}
	cmd.AddCommand(c.badgesListCmd())
	cmd.AddCommand(c.badgesMintCmd())
	cmd.AddCommand(c.badgesUpdateCmd())
	cmd.AddCommand(c.badgesDeleteCmd())
	cmd.AddCommand(c.badgesClearCmd())
	return cmd
}

func (c *cli) badgesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every badge in the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			badges, err := a.badges.List(cmd.Context())
			if err != nil {
				printWarning(c.noColor, "Wallet is unreadable: %v", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(badges)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, colorize(c.noColor, colorBold, "ID\tNAME\tCREATED"))
			for _, b := range badges {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, b.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "print the collection as JSON")
	return cmd
}

func (c *cli) badgesMintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a new badge",
		Long: `Mint a new badge. Minting waits for MINT_DELAY before the badge is stored.

Example:
  edusign badges mint --name "Rust Basics" \
    --description "Completed an intro Rust course" \
    --image https://example.com/rust.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			image, _ := cmd.Flags().GetString("image")

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			b, err := a.badges.Mint(cmd.Context(), badge.Fields{
				Name:        name,
				Description: description,
				Image:       image,
			})
			if err != nil {
				return err
			}

			printSuccess(c.noColor, "Minted %s", b.Name)
			fmt.Fprintln(cmd.OutOrStdout(), b.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "badge name")
	cmd.Flags().String("description", "", "what was achieved")
	cmd.Flags().String("image", "", "badge image URL")
	return cmd
}

func (c *cli) badgesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p badge.Patch
			for flag, dst := range map[string]**string{
				"name":        &p.Name,
				"description": &p.Description,
				"image":       &p.Image,
			} {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					*dst = &v
				}
			}
			if p.Name == nil && p.Description == nil && p.Image == nil {
				return fmt.Errorf("at least one of --name, --description or --image is required")
			}

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			b, found, err := a.badges.Update(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("badge %s not found", args[0])
			}
			printSuccess(c.noColor, "Updated %s (%s)", b.Name, b.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "new badge name")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("image", "", "new image URL")
	return cmd
}

func (c *cli) badgesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.badges.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("badge %s not found", args[0])
			}
			printSuccess(c.noColor, "Deleted %s", args[0])
			return nil
		},
	}
}

func (c *cli) badgesClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the whole collection; the default badges return on next list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.badges.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess(c.noColor, "Wallet cleared")
			return nil
		},
	}
}

// --- dark-mode ---

func (c *cli) darkModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "dark-mode [on|off]",
		Short:     "Show or set the dark mode preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				if err := a.badges.SetPreference(cmd.Context(), args[0] == "on"); err != nil {
					return err
				}
			}

			dark, err := a.badges.Preference(cmd.Context())
			if err != nil {
				printWarning(c.noColor, "Preference is unreadable: %v", err)
			}
			state := "off"
			if dark {
				state = "on"
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

// --- ask ---

func (c *cli) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the AI course advisor for recommendations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			advisor := c.newAdvisor(a.badges)
			if _, ok := advisor.Ask(cmd.Context(), strings.Join(args, " ")); !ok {
				return fmt.Errorf("question must not be blank")
			}

			for _, e := range advisor.Transcript() {
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
			}
			return nil
		},
	}
}
