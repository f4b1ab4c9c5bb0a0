package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-workout-backend/internal/services"
	"github.com/tbourn/go-workout-backend/internal/sysutil"
)

func (a *app) linkCmd() *cobra.Command {
	link := &cobra.Command{
		Use:   "link",
		Short: "Shared workout links",
	}
	link.AddCommand(a.linkIssueCmd())
	link.AddCommand(a.linkInspectCmd())
	return link
}

func (a *app) links() *services.LinkService {
	return services.NewLinkService(a.db, a.cfg.LinkTTL)
}

func (a *app) linkIssueCmd() *cobra.Command {
	var trainer, client, template, baseURL string
	cmd := &cobra.Command{
		Use:     "issue",
		Short:   "Issue a single-use link for a client's template",
		Example: "workoutctl link issue --client <uuid> --template <uuid>",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trainerID := sysutil.FirstNonEmpty(trainer, a.cfg.DefaultTrainerID)
			l, err := a.links().Issue(cmd.Context(), trainerID, client, template)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "token:   %s\n", l.Token)
			if base := strings.TrimRight(sysutil.FirstNonEmpty(baseURL, a.cfg.PublicBaseURL), "/"); base != "" {
				fmt.Fprintf(w, "url:     %s/workout/%s\n", base, l.Token)
			}
			fmt.Fprintf(w, "expires: %s\n", l.ExpiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&trainer, "trainer", "", "owning trainer (default $DEFAULT_TRAINER_ID)")
	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().StringVar(&template, "template", "", "template id")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "public base URL for the printed link (default $PUBLIC_BASE_URL)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func (a *app) linkInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Show a link's state without consuming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, state, err := a.links().Inspect(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "state:    %s\n", state)
			fmt.Fprintf(w, "client:   %s\n", l.ClientID)
			fmt.Fprintf(w, "template: %s\n", l.TemplateID)
			fmt.Fprintf(w, "expires:  %s\n", l.ExpiresAt.UTC().Format(time.RFC3339))
			if l.UsedAt != nil {
				fmt.Fprintf(w, "used:     %s\n", l.UsedAt.UTC().Format(time.RFC3339))
			}
			if l.WorkoutID != nil {
				fmt.Fprintf(w, "workout:  %s\n", *l.WorkoutID)
			}
			return nil
		},
	}
}
