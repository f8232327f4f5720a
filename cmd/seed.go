package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"steelorders/internal/core/application/usecases/commands"
	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document read by the seed tool.
type SeedFile struct {
	Users  []SeedUser  `yaml:"users"`
	Orders []SeedOrder `yaml:"orders"`
}

type SeedUser struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	Role        string `yaml:"role"`
	FirstName   string `yaml:"firstName"`
	LastName    string `yaml:"lastName"`
	Department  string `yaml:"department"`
	Designation string `yaml:"designation"`
	Gender      string `yaml:"gender"`
	PhoneNumber string `yaml:"phoneNumber"`
	Address     string `yaml:"address"`
}

// SeedOrder is created as a draft by Owner and then driven to Status.
// COMPLETED orders are completed by CompletedBy.
type SeedOrder struct {
	Owner               string `yaml:"owner"`
	Destination         string `yaml:"destination"`
	MaterialCode        string `yaml:"materialCode"`
	Party               string `yaml:"party"`
	Mill                string `yaml:"mill"`
	Priority            int    `yaml:"priority"`
	MaterialDescription string `yaml:"materialDescription"`
	OrderQuantity       int    `yaml:"orderQuantity"`
	ValidUntil          string `yaml:"validUntil"`
	Status              string `yaml:"status"`
	CompletedBy         string `yaml:"completedBy"`
	DispatchQuantity    int    `yaml:"dispatchQuantity"`
	CompletionNotes     string `yaml:"completionNotes"`
}

// SeedResult counts what a seed run created.
type SeedResult struct {
	UsersCreated  int
	UsersExisting int
	OrdersCreated int
}

// ParseSeedFile decodes a seed document. Unknown keys are rejected.
func ParseSeedFile(data []byte) (SeedFile, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file SeedFile
	if err := decoder.Decode(&file); err != nil {
		return SeedFile{}, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return file, nil
}

func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeedFile(data)
}

// Seed registers the users of file and creates its orders. Users that already
// exist are kept as they are. Orders are only created for owners registered by
// this run, so seeding twice does not duplicate them.
func (c *CompositionRoot) Seed(ctx context.Context, file SeedFile, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult

	register := c.CreateRegisterUserCommandHandler()
	authenticate := queries.NewAuthenticateQueryHandler(c.gormDB, c.hasher)

	actors := make(map[string]user.Actor, len(file.Users))
	created := make(map[string]bool, len(file.Users))

	for _, su := range file.Users {
		email := strings.ToLower(strings.TrimSpace(su.Email))
		role, err := user.ParseRole(su.Role)
		if err != nil {
			return result, fmt.Errorf("user %s: %w", email, err)
		}

		cmd, err := commands.NewRegisterUserCommand(email, role, su.profile(), su.Password)
		if err != nil {
			return result, fmt.Errorf("user %s: %w", email, err)
		}

		registered, err := register.Handle(ctx, cmd)
		switch {
		case err == nil:
			actors[email] = registered.Actor()
			created[email] = true
			result.UsersCreated++
			logger.InfoContext(ctx, "user created", "email", email, "role", role.String())
		case errors.Is(err, commands.ErrUserAlreadyExists):
			result.UsersExisting++
			logger.InfoContext(ctx, "user already exists", "email", email)
			if actor, ok := c.resolveSeededActor(ctx, authenticate, email, su.Password); ok {
				actors[email] = actor
			}
		default:
			return result, fmt.Errorf("user %s: %w", email, err)
		}
	}

	for i, so := range file.Orders {
		owner := strings.ToLower(strings.TrimSpace(so.Owner))
		if !created[owner] {
			continue
		}
		if err := c.seedOrder(ctx, so, actors); err != nil {
			return result, fmt.Errorf("order %d: %w", i+1, err)
		}
		result.OrdersCreated++
	}

	return result, nil
}

// resolveSeededActor signs in an existing account with its seed password. An
// account whose password was changed since is skipped.
func (c *CompositionRoot) resolveSeededActor(
	ctx context.Context,
	authenticate queries.AuthenticateQueryHandler,
	email, plainPassword string,
) (user.Actor, bool) {
	query, err := queries.NewAuthenticateQuery(email, plainPassword)
	if err != nil {
		return user.Actor{}, false
	}
	account, err := authenticate.Handle(ctx, query)
	if err != nil {
		return user.Actor{}, false
	}
	actor, err := user.NewActor(account.ID, account.Role)
	if err != nil {
		return user.Actor{}, false
	}
	return actor, true
}

func (c *CompositionRoot) seedOrder(ctx context.Context, so SeedOrder, actors map[string]user.Actor) error {
	owner := actors[strings.ToLower(strings.TrimSpace(so.Owner))]

	target := order.Draft
	if so.Status != "" {
		var err error
		if target, err = order.ParseStatus(so.Status); err != nil {
			return err
		}
	}

	validUntil, err := order.ParseValidUntil(so.ValidUntil)
	if err != nil {
		return err
	}

	createCmd, err := commands.NewCreateOrderCommand(owner, order.Details{
		Destination:         so.Destination,
		MaterialCode:        so.MaterialCode,
		Party:               so.Party,
		Mill:                so.Mill,
		Priority:            so.Priority,
		MaterialDescription: so.MaterialDescription,
		OrderQuantity:       so.OrderQuantity,
		ValidUntil:          validUntil,
	})
	if err != nil {
		return err
	}
	draft, err := c.CreateCreateOrderCommandHandler().Handle(ctx, createCmd)
	if err != nil {
		return err
	}
	if target == order.Draft {
		return nil
	}

	finalizeCmd, err := commands.NewOrderCommand(owner, draft.ID())
	if err != nil {
		return err
	}
	if _, err := c.CreateFinalizeOrderCommandHandler().Handle(ctx, finalizeCmd); err != nil {
		return err
	}
	if target == order.Finalized {
		return nil
	}

	completer, ok := actors[strings.ToLower(strings.TrimSpace(so.CompletedBy))]
	if !ok {
		return fmt.Errorf("completedBy %q is not a seeded user", so.CompletedBy)
	}
	targetCmd, err := commands.NewOrderCommand(completer, draft.ID())
	if err != nil {
		return err
	}
	completeCmd, err := commands.NewCompleteOrderCommand(targetCmd, so.DispatchQuantity, so.CompletionNotes)
	if err != nil {
		return err
	}
	_, err = c.CreateCompleteOrderCommandHandler().Handle(ctx, completeCmd)
	return err
}

func (su SeedUser) profile() user.Profile {
	return user.Profile{
		FirstName:   su.FirstName,
		LastName:    su.LastName,
		Department:  su.Department,
		Designation: su.Designation,
		Gender:      su.Gender,
		PhoneNumber: su.PhoneNumber,
		Address:     su.Address,
	}
}
