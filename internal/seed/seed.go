// Package seed loads the fixed party roster into storage on first boot:
// one admin, fourteen players, their cover personas, and the clue sets.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

type seedUser struct {
	username model.Username
	password string
	role     model.Role
}

var users = []seedUser{
	{"admin", "admin123", model.RoleAdmin},
	{"Dhruv", "bike123", model.RolePlayer},
	{"Aishani", "silver22", model.RolePlayer},
	{"Pragya", "elmwood3", model.RolePlayer},
	{"Saurav", "moto18", model.RolePlayer},
	{"Kailyn", "pine11", model.RolePlayer},
	{"Srihitha", "cedar9", model.RolePlayer},
	{"Vijay", "dog25", model.RolePlayer},
	{"Reena", "dino12", model.RolePlayer},
	{"Riteka", "notes31", model.RolePlayer},
	{"Sree", "solar41", model.RolePlayer},
	{"Suhani", "mango40", model.RolePlayer},
	{"Marissa", "cube12", model.RolePlayer},
	{"Janani", "chai30", model.RolePlayer},
	{"Gaurav", "ball42", model.RolePlayer},
}

var outies = map[model.Username]string{
	"Dhruv":    "14 Oakwood Ln • teal single-speed bike • double espresso • vintage-postcard collector • stargazing-podcast sleeper",
	"Aishani":  "22 Birchwood Ave • silver hatchback w/ bird decal • iced matcha latte • street-mural photographer • canvas tote of fresh herbs",
	"Pragya":   "3 Elmwood Ct • rides the light rail • vanilla cappuccino • sketches cafés in accordion notebook • mismatched socks",
	"Saurav":   "18 Rosewood Dr • black motorcycle • cold-brew coffee, black • Friday street-badminton • limited-edition sneaker hoard",
	"Vijay":    "25 Dogwood Cir • red sports car • straight Americano • collects antique fedoras • always carries a silver pen",
	"Kailyn":   "11 Pinewood Ter • lime e-scooter share • mango smoothie • dawn pier-yoga coach • bright coral water bottle",
	"Srihitha": "9 Cedarwood Walk • lavender electric scooter • chilled hibiscus tea • cryptogram-puzzle addict • pocket chess set",
}

var innies = map[model.Username]string{
	"Gaurav":  "Cubicle C42 • badge 63006 • berry protein shake • cassette stress-ball • gummy bears",
	"Sree":    "Cubicle G41 • badge 42322 • hazelnut latte • mini solar-system model • mixed nuts",
	"Reena":   "Cubicle G12 • badge 15624 • chamomile tea • plush dino • dark chocolate",
	"Marissa": "Cubicle D12 • badge 03414 • peppermint hot-choc • glass-cube paperweight • ginger cookies",
	"Janani":  "Cubicle B30 • badge 69071 • spiced ginger chai • beach-combs seashells • thin silver ankle bracelet",
	"Riteka":  "Cubicle B31 • badge 79888 • cinnamon-oat latte • animal-USB stash • neon sticky-notes",
	"Suhani":  "Cubicle G40 • badge 17255 • mango smoothie • coral stamp pad • blueberry-oat cookies",
}

var userClues = map[model.Username][]string{
	"Dhruv":    {"badge last digit <5", "non-coffee hot drink", "plush dino"},
	"Aishani":  {"cubicle B or D", "badge even", "animal USB"},
	"Pragya":   {"cubicle ends 0/1", "identical digits", "coral stamp"},
	"Saurav":   {"badge 2/4/8", "cubicle G", "mini solar system"},
	"Kailyn":   {"cubicle B or D", "badge even", "glass cube"},
	"Srihitha": {"cubicle ends 1/2", "coffee drink", "pocket Rubik's cube"},
	"Vijay":    {"badge last digit >5", "motorized vehicle", "antique fedoras"},
	"Reena":    {"two-wheel commute", "coffee drink", "collects postcards"},
	"Riteka":   {"car OR light-rail", "tea drink", "carries herbs"},
	"Sree":     {"two-wheel commute", "coffee drink", "street badminton"},
	"Suhani":   {"coffee drink", "no personal vehicle", "café sketches"},
	"Marissa":  {"two-wheel commute", "NOT coffee", "coral bottle"},
	"Janani":   {"badge digits even sum", "cubicle row B", "silver anklet"},
	"Gaurav":   {"badge last digit even", "protein shake", "cassette stress-ball"},
}

var murderClues = model.MurderClues{
	ToOuties: []string{
		"coffee-based beverage",
		"innie murderer is in cubicle letter C or D",
		"collects unusual fashion items",
	},
	ToInnies: []string{
		"badge ends 2/4/6",
		"outie murderer has a motorized vehicle",
		"drinks NO coffee or tea",
	},
}

// Apply seeds the roster with production-strength password hashes. It is
// idempotent: a storage that already holds users is left untouched.
func Apply(ctx context.Context, st storage.Storage, logger *slog.Logger) error {
	return ApplyWithCost(ctx, st, bcrypt.DefaultCost, logger)
}

// ApplyWithCost is Apply with a caller-chosen bcrypt cost. Tests use
// bcrypt.MinCost to keep hashing off the critical path.
func ApplyWithCost(ctx context.Context, st storage.Storage, cost int, logger *slog.Logger) error {
	count, err := st.UserCount(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if count > 0 {
		logger.Info("storage already seeded, skipping", slog.Int("users", count))
		return nil
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), cost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.username, err)
		}
		user := &model.User{
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := st.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("saving user %s: %w", u.username, err)
		}
	}

	for group, personas := range map[model.PersonaGroup]map[model.Username]string{
		model.GroupOutie: outies,
		model.GroupInnie: innies,
	} {
		for username, description := range personas {
			persona := &model.Persona{
				Username:    username,
				Group:       group,
				Description: description,
			}
			if err := st.SavePersona(ctx, persona); err != nil {
				return fmt.Errorf("saving persona for %s: %w", username, err)
			}
		}
	}

	for username, clues := range userClues {
		if err := st.SaveUserClues(ctx, username, clues); err != nil {
			return fmt.Errorf("saving clues for %s: %w", username, err)
		}
	}

	mc := murderClues
	if err := st.SaveMurderClues(ctx, &mc); err != nil {
		return fmt.Errorf("saving murder clues: %w", err)
	}

	logger.Info("storage seeded",
		slog.Int("users", len(users)),
		slog.Int("personas", len(outies)+len(innies)))
	return nil
}
