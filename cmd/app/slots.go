package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"prestigo/internal/config"
	"prestigo/internal/reservation"
	"prestigo/internal/slot"
	"prestigo/internal/store"
	"prestigo/internal/venue"
)

func newSlotsCmd() *cobra.Command {
	var venueID, day string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a venue's slots and availability for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			hours, err := cfg.SlotHours()
			if err != nil {
				return err
			}
			database, err := openDatabase(cfg, false)
			if err != nil {
				return err
			}
			defer database.Close()

			reservations := reservation.NewRepository(store.NewSQLStore(database))
			venues := venue.NewService(venue.NewRepository(database), hours, slot.NewGenerator(reservations))

			ctx := cmd.Context()
			if day == "" {
				day = time.Now().In(hours.Location).Format(time.DateOnly)
			}
			d, err := venues.ParseDay(ctx, venueID, day)
			if err != nil {
				return err
			}
			slots, err := venues.Slots(ctx, venueID, d)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tEND\tAVAILABLE")
			for _, s := range slots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", s.ID, s.StartAt.Format("15:04"), s.EndAt.Format("15:04"), s.Available, s.Capacity)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&venueID, "venue", "", "venue ID")
	cmd.Flags().StringVar(&day, "day", "", "day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("venue")
	return cmd
}
