package cmd

import (
	"github.com/etnz/capgains/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// ledgerFiles predicts the ledger files cgt can read.
var ledgerFiles = predict.Files("*")

// Completion describes the cgt command line for shell completion.
func Completion() *complete.Command {
	names, _ := docs.All()
	topics := append(predict.Set{"*"}, names...)

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"compute": {Args: ledgerFiles},
			"summary": {
				Flags: map[string]complete.Predictor{
					"s":    predict.Something,
					"d":    predict.Something,
					"fy":   predict.Something,
					"open": predict.Nothing,
					"md":   predict.Nothing,
				},
				Args: ledgerFiles,
			},
			"lots": {
				Flags: map[string]complete.Predictor{
					"md": predict.Nothing,
				},
				Args: ledgerFiles,
			},
			"topic": {
				Flags: map[string]complete.Predictor{
					"md": predict.Nothing,
				},
				Args: topics,
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
