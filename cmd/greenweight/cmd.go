package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/pine-weight-etl/internal/domain"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

const (
	sampleDBH    = 10
	sampleHeight = 60
	sampleMTop   = 4
)

type treeFlags struct {
	species string
	region  string
	dbh     float64
	height  float64
	mtop    float64
}

func (f *treeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.species, "species", "loblolly", "species: loblolly, slash or longleaf")
	cmd.Flags().StringVar(&f.region, "region", "", "loblolly region: lcp, ucp, pied, piedmont, nla, texas, louisiana")
	cmd.Flags().Float64Var(&f.dbh, "dbh", sampleDBH, "diameter at breast height, inches")
	cmd.Flags().Float64Var(&f.height, "height", sampleHeight, "total height, feet")
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "greenweight",
		Short:        "Estimate green weight of loblolly, slash and longleaf pine",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(out)
		},
	}
	root.SetOut(out)
	root.AddCommand(newSampleCmd(out), newEstimateCmd(out), newSweepCmd(out))
	return root
}

func newSampleCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print estimates for dbh=10 height=60 mtop=4 across all species and regions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(out)
		},
	}
}

func runSample(out io.Writer) error {
	est := domain.NewEstimator(sampleDBH, sampleHeight, sampleMTop)
	rows := make([]row, 0, 2+len(domain.RegionNames()))

	slash, err := est.SlashGreenWeight()
	if err != nil {
		return err
	}
	rows = append(rows, row{label: "slash", lbs: slash})

	for _, r := range domain.RegionNames() {
		lbs, err := est.LoblollyGreenWeight(r)
		if err != nil {
			return err
		}
		rows = append(rows, row{label: "loblolly " + r, lbs: lbs})
	}

	longleaf, err := est.LongleafGreenWeight()
	if err != nil {
		return err
	}
	rows = append(rows, row{label: "longleaf", lbs: longleaf})

	fmt.Fprintf(out, "dbh=%g in  height=%g ft  mtop=%g in\n", float64(sampleDBH), float64(sampleHeight), float64(sampleMTop))
	return writeRows(out, rows)
}

func newEstimateCmd(out io.Writer) *cobra.Command {
	var f treeFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate green weight for one tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			species, err := domain.ParseSpecies(f.species)
			if err != nil {
				return err
			}
			lbs, err := domain.NewEstimator(f.dbh, f.height, f.mtop).GreenWeight(species, f.region)
			if err != nil {
				return err
			}
			label := string(species)
			if species.NeedsRegion() {
				label += " " + f.region
			}
			return writeRows(out, []row{{label: label, lbs: lbs}})
		},
	}
	f.bind(cmd)
	cmd.Flags().Float64Var(&f.mtop, "mtop", sampleMTop, "merchantable top diameter, inches")
	return cmd
}

func newSweepCmd(out io.Writer) *cobra.Command {
	var (
		f        treeFlags
		from, to float64
		steps    int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate one species over an evenly spaced range of merchantable tops",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 2 {
				return errors.New("--steps must be at least 2")
			}
			species, err := domain.ParseSpecies(f.species)
			if err != nil {
				return err
			}
			tops, err := sweep(species, f.region, f.dbh, f.height, from, to, steps)
			if err != nil {
				return err
			}
			return writeRows(out, tops)
		},
	}
	f.bind(cmd)
	cmd.Flags().Float64Var(&from, "from", 0, "smallest merchantable top, inches")
	cmd.Flags().Float64Var(&to, "to", 6, "largest merchantable top, inches")
	cmd.Flags().IntVar(&steps, "steps", 13, "number of evenly spaced tops")
	return cmd
}

// sweep evaluates a species at evenly spaced mtop values between from and to.
func sweep(s domain.Species, region string, dbh, height, from, to float64, steps int) ([]row, error) {
	tops := floats.Span(make([]float64, steps), from, to)
	rows := make([]row, 0, steps)
	for _, mtop := range tops {
		lbs, err := domain.NewEstimator(dbh, height, mtop).GreenWeight(s, region)
		if err != nil {
			return nil, fmt.Errorf("mtop=%g: %w", mtop, err)
		}
		rows = append(rows, row{label: fmt.Sprintf("mtop=%.3f", mtop), lbs: lbs})
	}
	return rows, nil
}
