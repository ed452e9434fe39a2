// Package rating classifies the point swing of a transfer or captaincy decision.
package rating

import "github.com/omarshaarawi/tempad/internal/models"

const (
	// MasterclassThreshold is the smallest diff rated a masterclass.
	MasterclassThreshold = 10
	// DisasterclassThreshold is the largest diff rated a disasterclass.
	DisasterclassThreshold = -10
)

const (
	LabelDisasterclass = "Disasterclass"
	LabelBad           = "Bad choice"
	LabelNoImpact      = "No impact"
	LabelGood          = "Good choice"
	LabelMasterclass   = "Masterclass"
)

func Rate(diff int) models.Rating {
	switch {
	case diff <= DisasterclassThreshold:
		return models.Rating{Band: models.RatingDisasterclass, Label: LabelDisasterclass}
	case diff < 0:
		return models.Rating{Band: models.RatingBad, Label: LabelBad}
	case diff == 0:
		return models.Rating{Band: models.RatingNoImpact, Label: LabelNoImpact}
	case diff < MasterclassThreshold:
		return models.Rating{Band: models.RatingGood, Label: LabelGood}
	default:
		return models.Rating{Band: models.RatingMasterclass, Label: LabelMasterclass}
	}
}
