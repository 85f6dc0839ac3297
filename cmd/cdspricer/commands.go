package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/portfolio"
)

var priceCmd = &cobra.Command{
	Use:   "price <trade.yaml>",
	Short: "Value a single CDS and print the leg breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trade, err := loadTradeFile(args[0])
		if err != nil {
			return err
		}
		legs, err := trade.PresentValueByLeg()
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"trade_id": trade.ID,
			"file":     args[0],
		}).Debug("trade valued")

		fmt.Printf("Premium leg (per unit spread): %18.6f\n", legs.PremiumLegPV)
		fmt.Printf("  of which accrual-on-default: %18.6f\n", legs.AccrualOnDefault)
		fmt.Printf("Contingent leg:                %18.6f\n", legs.ContingentLegPV)
		fmt.Printf("Accrued interest:              %18.6f\n", legs.AccruedInterest)
		fmt.Printf("Present value:                 %18.6f\n", legs.PresentValue)
		return nil
	},
}

var parSpreadCmd = &cobra.Command{
	Use:   "parspread <trade.yaml>",
	Short: "Solve the par spread of a CDS at inception",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trade, err := loadTradeFile(args[0])
		if err != nil {
			return err
		}
		spreadBP, err := trade.ParSpread()
		if err != nil {
			return err
		}
		fmt.Printf("Par spread: %.6f bp\n", spreadBP)
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <trade.yaml>",
	Short: "Print the premium leg accrual schedule and coupon cashflows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trade, err := loadTradeFile(args[0])
		if err != nil {
			return err
		}
		dates, err := cds.PremiumLegSchedule(trade.Contract)
		if err != nil {
			return err
		}
		flows, err := trade.CouponCashflows()
		if err != nil {
			return err
		}

		fmt.Printf("Accrual dates (%d):\n", len(dates))
		for _, d := range dates {
			fmt.Printf("  %s\n", d.Format("2006-01-02"))
		}
		fmt.Printf("Remaining coupons (%d):\n", len(flows))
		for _, f := range flows {
			fmt.Printf("  %s -> %s  dcf=%.6f  amount=%s\n",
				f.AccrualStart.Format("2006-01-02"),
				f.AccrualEnd.Format("2006-01-02"),
				f.DayCountFraction,
				f.Amount.StringFixed(2))
		}
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <trade.yaml> [trade.yaml...]",
	Short: "Value a set of trades in parallel and print the total PV",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		trades := make([]*cds.Trade, 0, len(args))
		for _, path := range args {
			trade, err := loadTradeFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			trades = append(trades, trade)
		}

		results, err := portfolio.ValueAll(context.Background(), trades, concurrency)
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Printf("%-40s %18.6f\n", args[i], r.Legs.PresentValue)
		}
		fmt.Printf("%-40s %18.6f\n", "TOTAL", portfolio.TotalPV(results))
		return nil
	},
}

func init() {
	batchCmd.Flags().Int("concurrency", 0, "max parallel valuations (0 = unbounded)")
}
