package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mesaYaBooking/internal/modules/reservations/domain"
)

var slotsDate string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the bookable start times for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		date := time.Now()
		if slotsDate != "" {
			if date, err = domain.ParseDate(slotsDate); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		schedule := cfg.Restaurant.Schedule
		fmt.Fprintf(out, "%s on %s (%d seats)\n", cfg.Restaurant.Name, domain.DateKey(date), cfg.Restaurant.TotalSeats)
		if !schedule.OpenOn(date) {
			fmt.Fprintln(out, "closed")
			return nil
		}
		for _, slot := range schedule.BookableSlots(date) {
			fmt.Fprintf(out, "%s  %s\n", slot.String(), slot.Label())
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "date to inspect (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(slotsCmd)
}
