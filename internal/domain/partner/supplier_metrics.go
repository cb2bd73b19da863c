package partner

import (
	"time"
)

// trailingYear is the window treated as "this year" when partitioning a
// supplier's deliveries
const trailingYear = 365 * 24 * time.Hour

// Category thresholds
const (
	reliableReplacementDays     = 7
	reliableAssortmentCount     = 20
	reliableOnTimeRatio         = 0.9
	satisfactoryReplacementDays = 10
	satisfactoryAssortmentCount = 10
	satisfactoryOnTimeRatio     = 0.8
)

// DeliverySnapshot carries the delivery fields the supplier reliability
// calculation needs, decoupled from the logistics context
type DeliverySnapshot struct {
	Quantity          float64
	DefectiveQuantity float64
	OnTime            bool
	Duration          float64 // days
	PurchaseDate      time.Time
}

// RecalculateReliability recomputes the supplier's derived aggregates
// from its full delivery history, overwriting previous values in place.
// crossSupplierDefectRate is the mean lifetime defect rate across all
// suppliers, against which the Reliable tier is judged. Invoked after
// every delivery create/update for this supplier and once at creation.
func (s *Supplier) RecalculateReliability(deliveries []DeliverySnapshot, crossSupplierDefectRate float64, now time.Time) {
	cutoff := now.Add(-trailingYear)

	var yearQty, yearDefective, totalQty, totalDefective float64
	var onTime int
	var durationSum float64
	for _, d := range deliveries {
		totalQty += d.Quantity
		totalDefective += d.DefectiveQuantity
		if d.PurchaseDate.After(cutoff) {
			yearQty += d.Quantity
			yearDefective += d.DefectiveQuantity
		}
		if d.OnTime {
			onTime++
		}
		durationSum += d.Duration
	}

	s.DefectRateYear = defectRate(yearDefective, yearQty)
	s.DefectRateTotal = defectRate(totalDefective, totalQty)
	s.ReceivedQuantity = yearQty

	if len(deliveries) == 0 {
		s.OnTimePercentage = 0
		s.AvgDeliveryTime = 0
	} else {
		s.OnTimePercentage = float64(onTime) / float64(len(deliveries))
		s.AvgDeliveryTime = durationSum / float64(len(deliveries))
	}

	s.Category = s.classify(crossSupplierDefectRate)
}

func defectRate(defective, quantity float64) float64 {
	if quantity == 0 {
		return 0
	}
	return defective / quantity
}

// classify evaluates the Reliable tier first and falls through to
// Satisfactory on failure; everything else is Unsatisfactory
func (s *Supplier) classify(crossSupplierDefectRate float64) SupplierCategory {
	qualityYear := 1 - s.DefectRateYear
	qualityTotal := 1 - s.DefectRateTotal
	registryOK := s.RegistryActive && s.InTradeRegistry

	if s.DefectRateTotal < crossSupplierDefectRate &&
		registryOK &&
		s.ReplacementDays <= reliableReplacementDays &&
		s.AssortmentCount >= reliableAssortmentCount &&
		s.TermsFlexible &&
		qualityYear >= qualityTotal &&
		s.OnTimePercentage >= reliableOnTimeRatio {
		return SupplierCategoryReliable
	}

	if registryOK &&
		s.ReplacementDays <= satisfactoryReplacementDays &&
		s.AssortmentCount >= satisfactoryAssortmentCount &&
		s.TermsFlexible &&
		qualityYear >= qualityTotal &&
		s.OnTimePercentage >= satisfactoryOnTimeRatio {
		return SupplierCategorySatisfactory
	}

	return SupplierCategoryUnsatisfactory
}
