package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

// View models keep persistence-only fields such as the password hash out
// of API responses.

type userView struct {
	ID        uuid.UUID    `json:"id"`
	Email     string       `json:"email"`
	Username  string       `json:"username"`
	Role      string       `json:"role"`
	Profile   *profileView `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

type profileView struct {
	TotalSpend int64       `json:"totalSpend"`
	Level      int         `json:"level"`
	Progress   float64     `json:"progress"`
	OwnedGames []uuid.UUID `json:"ownedGameIds"`
}

type gameView struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	Genre            string    `json:"genre"`
	Price            int64     `json:"price"`
	AgeRating        int       `json:"ageRating"`
	ImageURL         string    `json:"imageUrl"`
	CreatedAt        time.Time `json:"createdAt"`
}

type totalsView struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type cartLineView struct {
	Game     gameView `json:"game"`
	Quantity int      `json:"quantity"`
	Amount   int64    `json:"amount"`
}

type cartView struct {
	Lines  []cartLineView `json:"lines"`
	Totals totalsView     `json:"totals"`
}

type orderLineView struct {
	GameID    uuid.UUID `json:"gameId"`
	Title     string    `json:"title"`
	UnitPrice int64     `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	Amount    int64     `json:"amount"`
}

type orderView struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Lines     []orderLineView `json:"lines"`
	Total     int64           `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

type authView struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         userView `json:"user"`
}

type checkoutView struct {
	Order     orderView  `json:"order"`
	Totals    totalsView `json:"totals"`
	LeveledUp bool       `json:"leveledUp"`
}

func renderUser(user *entity.User) userView {
	view := userView{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		view.Profile = &profileView{
			TotalSpend: user.Profile.TotalSpend,
			Level:      user.Profile.Level,
			Progress:   user.Profile.Progress,
			OwnedGames: user.Profile.OwnedGameIDs,
		}
	}

	return view
}

func renderGame(game *entity.Game) gameView {
	return gameView{
		ID:               game.ID,
		Title:            game.Title,
		Description:      game.Description,
		ShortDescription: game.ShortDescription,
		Genre:            game.Genre,
		Price:            game.Price,
		AgeRating:        game.AgeRating,
		ImageURL:         game.ImageURL,
		CreatedAt:        game.CreatedAt,
	}
}

func renderGames(games []*entity.Game) []gameView {
	views := make([]gameView, 0, len(games))
	for _, game := range games {
		views = append(views, renderGame(game))
	}

	return views
}

func renderTotals(totals entity.CheckoutTotals) totalsView {
	return totalsView{
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}

func renderCart(cart *usecase.CartOutput) cartView {
	lines := make([]cartLineView, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, cartLineView{
			Game:     renderGame(line.Game),
			Quantity: line.Quantity,
			Amount:   line.Amount,
		})
	}

	return cartView{Lines: lines, Totals: renderTotals(cart.Totals)}
}

func renderOrder(order *entity.Order) orderView {
	lines := make([]orderLineView, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineView{
			GameID:    line.GameID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Amount:    line.Amount(),
		})
	}

	return orderView{
		ID:        order.ID,
		UserID:    order.UserID,
		Lines:     lines,
		Total:     order.Total,
		Status:    order.Status.String(),
		CreatedAt: order.CreatedAt,
	}
}

func renderOrders(orders []*entity.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, renderOrder(order))
	}

	return views
}

func renderAuth(out *usecase.AuthOutput) authView {
	return authView{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         renderUser(out.User),
	}
}
