package services

import (
	"fmt"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
)

// Pure promotion arithmetic. These functions never mutate the package they
// are given and never touch I/O, so the storefront and the checkout can both
// price an offer and agree on the result.

// CalculateFinalPrice returns the price a buyer pays for a package. Only the
// discount promotion changes the price; bonus-style promotions change the
// ticket count instead.
func CalculateFinalPrice(pkg models.TicketPackage) float64 {
	if pkg.PromotionType == models.PromotionDiscount {
		return pkg.BasePrice * (1 - float64(pkg.PromotionValue)/100)
	}
	return pkg.BasePrice
}

// CalculateTotalTickets returns how many tickets the package delivers after
// its promotion. An amount of zero yields zero tickets for every promotion.
func CalculateTotalTickets(pkg models.TicketPackage) int {
	switch pkg.PromotionType {
	case models.PromotionBonus:
		if pkg.Amount == 0 {
			return 0
		}
		return pkg.Amount + pkg.PromotionValue
	case models.PromotionTwoForOne:
		return pkg.Amount * 2
	case models.PromotionThreeForTwo:
		return (pkg.Amount/2)*3 + pkg.Amount%2
	default:
		return pkg.Amount
	}
}

// PromotionLabel renders the storefront badge for a promotion
func PromotionLabel(promotionType models.PromotionType, value int) string {
	switch promotionType {
	case models.PromotionDiscount:
		return fmt.Sprintf("%d%% OFF", value)
	case models.PromotionBonus:
		return fmt.Sprintf("+%d FREE", value)
	case models.PromotionTwoForOne:
		return "2x1"
	case models.PromotionThreeForTwo:
		return "3x2"
	default:
		return ""
	}
}

// CalculateOffer turns a persisted package into the derived offer shown to
// the buyer: a value snapshot frozen at resolution time.
func CalculateOffer(pkg models.TicketPackage) models.CalculatedTicketPackage {
	finalPrice := CalculateFinalPrice(pkg)
	return models.CalculatedTicketPackage{
		PackageID:      pkg.ID,
		Amount:         pkg.Amount,
		TotalTickets:   CalculateTotalTickets(pkg),
		FinalPrice:     finalPrice,
		OriginalPrice:  pkg.BasePrice,
		TotalDiscount:  pkg.BasePrice - finalPrice,
		PromotionLabel: PromotionLabel(pkg.PromotionType, pkg.PromotionValue),
		IsFeatured:     pkg.IsFeatured,
		BadgeText:      pkg.BadgeText,
		IsAvailable:    pkg.Amount > 0,
	}
}

// defaultLadderAmounts are the fallback tiers used when a raffle has no
// packages configured, so the storefront is never empty.
var defaultLadderAmounts = []int{5, 10, 20, 30, 50, 100}

// DefaultOffers synthesizes the fallback package ladder off the raffle's
// base ticket price.
func DefaultOffers(raffle *models.Raffle) []models.CalculatedTicketPackage {
	offers := make([]models.CalculatedTicketPackage, 0, len(defaultLadderAmounts))
	for i, amount := range defaultLadderAmounts {
		price := float64(amount) * raffle.Price
		offers = append(offers, models.CalculatedTicketPackage{
			Amount:        amount,
			TotalTickets:  amount,
			FinalPrice:    price,
			OriginalPrice: price,
			IsFeatured:    i == 2, // middle tier highlighted
			IsAvailable:   true,
		})
	}
	return offers
}
