package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/KirkDiggler/dungeon-saves/internal/auth"
	"github.com/KirkDiggler/dungeon-saves/internal/config"
	"github.com/KirkDiggler/dungeon-saves/internal/dice"
	"github.com/KirkDiggler/dungeon-saves/internal/events"
	characterRepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	savesrepo "github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
	"github.com/KirkDiggler/dungeon-saves/internal/services"
	"github.com/KirkDiggler/dungeon-saves/internal/services/character"
	"github.com/KirkDiggler/dungeon-saves/internal/services/saves"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

// offlineAuth stands in for a sign-in when no tokens are configured
type offlineAuth struct{}

func (offlineAuth) IsAuthenticated() bool { return true }

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("dungeon failed")
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.SetLevel(cfg.Level())

	userFlag := flag.String("user", "", "User ID (defaults to the access token subject)")
	characterID := flag.String("character", "", "Stored character ID to play; a new character is created when empty")
	name := flag.String("name", "冒険者", "Name for a new character")
	script := flag.String("script", "", `Actions to run, e.g. "right right up door:3,1 stairs"`)
	fresh := flag.Bool("new", false, "Start a new run even if a save exists")
	list := flag.Bool("list", false, "List the user's saves and exit")
	listCharacters := flag.Bool("characters", false, "List the user's characters and exit")
	flag.Parse()

	ctx := context.Background()

	stores, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer stores.close()

	authenticator, userID, err := signIn(cfg, *userFlag)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	roller := dice.NewRandomRoller()
	provider := services.NewProvider(&services.ProviderConfig{
		SaveRepository:      stores.saves,
		CharacterRepository: stores.characters,
		Authenticator:       authenticator,
		Roller:              roller,
		MaxMessages:         cfg.Game.MaxMessages,
	})
	subscribeLogging(provider.EventBus)
	saveService := provider.SaveService

	if *list {
		return listSaves(ctx, os.Stdout, saveService, userID)
	}
	if *listCharacters {
		return listOwnCharacters(ctx, os.Stdout, provider.CharacterService, userID)
	}

	steps, err := parseScript(*script)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	hero, err := resolveCharacter(ctx, provider.CharacterService, userID, *characterID, *name)
	if err != nil {
		return err
	}

	record, err := saveService.Load(ctx, userID, hero.ID)
	if err != nil {
		return fmt.Errorf("load save: %w", err)
	}
	if record == nil || *fresh {
		record, err = saveService.Start(ctx, userID, hero.ID)
		if err != nil {
			return fmt.Errorf("start run: %w", err)
		}
	}

	state, completed := runScript(provider.GameplayService, record.SaveState, steps)

	record, err = saveService.Store(ctx, userID, state)
	if err != nil {
		return fmt.Errorf("store save: %w", err)
	}

	if record.Character != nil {
		if _, err := provider.CharacterService.UpdateCharacter(ctx, userID, *record.Character); err != nil {
			log.WithError(err).WithField("character_id", hero.ID).Warn("Failed to update stored character")
		}
	}

	log.WithFields(log.Fields{
		"save_id":   record.ID,
		"floor":     record.CurrentFloor,
		"x":         record.PlayerX,
		"y":         record.PlayerY,
		"completed": completed,
	}).Info("Saved")

	floor, err := renderFloor(record.SaveState)
	if err != nil {
		return fmt.Errorf("render floor: %w", err)
	}
	fmt.Print(floor)
	fmt.Print(renderStatus(record.SaveState))

	return nil
}

// resolveCharacter loads the requested character, or creates one with rolled stats
// when no ID is given
func resolveCharacter(ctx context.Context, svc character.Service, userID, characterID, name string) (*characterRepo.CharacterRecord, error) {
	if characterID != "" {
		hero, err := svc.GetCharacter(ctx, userID, characterID)
		if err != nil {
			return nil, fmt.Errorf("load character: %w", err)
		}
		return hero, nil
	}

	hero, err := svc.CreateCharacter(ctx, &character.CreateCharacterInput{
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	log.WithFields(log.Fields{
		"character_id": hero.ID,
		"name":         hero.Name,
	}).Info("No character given, created one")

	return hero, nil
}

// subscribeLogging logs the milestones of a run
func subscribeLogging(bus *events.Bus) {
	logger := events.NewListener("cli-log", 100, func(e events.Event) error {
		fields := log.Fields{"event": e.GetType()}
		switch ev := e.(type) {
		case *events.EnemyEncounteredEvent:
			fields["enemy"] = ev.Enemy.Name
		case *events.BattleWonEvent:
			fields["enemy"] = ev.Enemy.Name
			fields["exp"] = ev.Rewards.Exp
			fields["gold"] = ev.Rewards.Gold
		case *events.LevelUpEvent:
			fields["level"] = ev.Level
			fields["hp"] = ev.Gains.HP
			fields["attack"] = ev.Gains.Attack
			fields["defense"] = ev.Gains.Defense
		case *events.FloorChangedEvent:
			fields["from"] = ev.From
			fields["to"] = ev.To
		case *events.ChestOpenedEvent:
			fields["treasure"] = ev.Treasure.Type
		case *events.DoorOpenedEvent:
			fields["used_key"] = ev.UsedKey
		}
		log.WithFields(fields).Info("Game event")
		return nil
	})

	for _, eventType := range []events.EventType{
		events.EventTypeEnemyEncountered,
		events.EventTypeBattleWon,
		events.EventTypeLevelUp,
		events.EventTypeDoorOpened,
		events.EventTypeChestOpened,
		events.EventTypeFloorChanged,
		events.EventTypeDungeonCompleted,
	} {
		bus.Subscribe(eventType, logger)
	}
}

// stores holds the repositories one run works against
type stores struct {
	saves      savesrepo.Repository
	characters characterRepo.Repository
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Kind {
	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.WithField("url", cfg.Redis.URL).Info("Using Redis for saves and characters")

		return &stores{
			saves:      savesrepo.NewRedis(client, cfg.Redis.TTL),
			characters: characterRepo.NewRedis(client),
			close: func() {
				if err := client.Close(); err != nil {
					log.WithError(err).Warn("Failed to close Redis client")
				}
			},
		}, nil
	case config.StoreSQLite:
		saveRepo, err := savesrepo.OpenSQLite(&savesrepo.SQLiteRepoConfig{
			Path:          cfg.SQLite.Path,
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		})
		if err != nil {
			return nil, err
		}
		characterStore, err := characterRepo.OpenSQLite(&characterRepo.SQLiteRepoConfig{
			Path:          cfg.SQLite.Path,
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		})
		if err != nil {
			_ = saveRepo.Close()
			return nil, err
		}
		log.WithField("path", cfg.SQLite.Path).Info("Using SQLite for saves and characters")

		return &stores{
			saves:      saveRepo,
			characters: characterStore,
			close: func() {
				if err := characterStore.Close(); err != nil {
					log.WithError(err).Warn("Failed to close SQLite character store")
				}
				if err := saveRepo.Close(); err != nil {
					log.WithError(err).Warn("Failed to close SQLite save store")
				}
			},
		}, nil
	default:
		log.Info("Using in-memory stores; nothing survives this run")
		return &stores{
			saves: savesrepo.NewInMemoryRepository(&savesrepo.Config{
				UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
			}),
			characters: characterRepo.NewInMemoryRepository(&characterRepo.Config{
				UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
			}),
			close: func() {},
		}, nil
	}
}

// signIn returns the authenticator and the user the run acts as
func signIn(cfg *config.Config, userFlag string) (saves.Authenticator, string, error) {
	if cfg.Session.Offline() {
		if userFlag == "" {
			return nil, "", fmt.Errorf("-user is required without sign-in tokens")
		}
		log.WithField("user_id", userFlag).Warn("No sign-in tokens configured, running offline")
		return offlineAuth{}, userFlag, nil
	}

	session := auth.NewSession(&auth.SessionConfig{TTL: cfg.Session.TTL})
	session.Store(auth.Tokens{
		IDToken:     cfg.Session.IDToken,
		AccessToken: cfg.Session.AccessToken,
	})
	if !session.IsAuthenticated() {
		return nil, "", fmt.Errorf("sign-in tokens are missing or expired")
	}

	if userFlag != "" {
		return session, userFlag, nil
	}
	userID, err := session.UserID()
	if err != nil {
		return nil, "", err
	}
	return session, userID, nil
}

func listSaves(ctx context.Context, w io.Writer, svc saves.Service, userID string) error {
	records, err := svc.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "No saves for %s\n", userID)
		return nil
	}
	for _, r := range records {
		name := ""
		if r.Character != nil {
			name = r.Character.Name
		}
		fmt.Fprintf(w, "%s  %s  %s  floor %d (%d,%d)  updated %s\n",
			r.ID, r.CharacterID, name, r.CurrentFloor, r.PlayerX, r.PlayerY,
			r.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func listOwnCharacters(ctx context.Context, w io.Writer, svc character.Service, userID string) error {
	records, err := svc.ListCharacters(ctx, userID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "No characters for %s\n", userID)
		return nil
	}
	for _, c := range records {
		fmt.Fprintf(w, "%s  %s  Lv%d  HP %d/%d  ATK %d  DEF %d  %dG\n",
			c.ID, c.Name, c.Level, c.HP, c.MaxHP, c.Attack, c.Defense, c.Gold)
	}
	return nil
}
