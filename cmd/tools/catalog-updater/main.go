// cmd/tools/catalog-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"mergington-activities/internal/common/validation"
	"mergington-activities/internal/registry"
	"mergington-activities/pkg/catalog"
)

const defaultPath = "configs/activities.json"

func main() {
	initCmd := flag.NewFlagSet("init", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Init command flags
	initPath := initCmd.String("path", defaultPath, "Where to write the catalog file")

	// Add command flags
	addPath := addCmd.String("path", defaultPath, "Path to catalog file")
	name := addCmd.String("name", "", "Activity name (e.g., \"Chess Club\")")
	description := addCmd.String("description", "", "Description")
	schedule := addCmd.String("schedule", "", "Schedule (e.g., \"Fridays, 3:30 PM - 5:00 PM\")")
	maxParticipants := addCmd.Int("max", 0, "Maximum number of participants")

	// Update command flags
	updatePath := updateCmd.String("path", defaultPath, "Path to catalog file")
	nameUpdate := updateCmd.String("name", "", "Activity name to update")
	field := updateCmd.String("field", "", "Field to update (description, schedule, max)")
	value := updateCmd.String("value", "", "New value for the field")

	// Validate command flags
	validatePath := validateCmd.String("path", defaultPath, "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		initCmd.Parse(os.Args[2:])
		if err := initCatalog(*initPath); err != nil {
			fmt.Printf("Error initializing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default catalog to %s\n", *initPath)

	case "add":
		addCmd.Parse(os.Args[2:])
		if *name == "" || *description == "" || *schedule == "" || *maxParticipants < 1 {
			fmt.Println("Error: name, description, schedule, and a positive max are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		entry := catalog.Entry{
			Name:            *name,
			Description:     *description,
			Schedule:        *schedule,
			MaxParticipants: *maxParticipants,
			Participants:    []string{},
		}
		if err := addActivity(*addPath, entry); err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *name)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *nameUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(*validatePath); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func initCatalog(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("catalog file %s already exists", path)
	}

	cat := catalog.Default()
	cat.LastUpdated = time.Now().Format(time.RFC3339)
	return catalog.Save(cat, path)
}

func addActivity(path string, entry catalog.Entry) error {
	cat, err := catalog.Load(path)
	if err != nil {
		// If file doesn't exist, start an empty catalog
		if os.IsNotExist(err) {
			cat = &catalog.Catalog{
				Version:    "1.0.0",
				Activities: []catalog.Entry{},
			}
		} else {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	// Activity names are the registry key, so reject duplicates here too
	for _, existing := range cat.Activities {
		if existing.Name == entry.Name {
			return fmt.Errorf("activity %q already exists", entry.Name)
		}
	}

	cat.Activities = append(cat.Activities, entry)
	cat.LastUpdated = time.Now().Format(time.RFC3339)

	return catalog.Save(cat, path)
}

func updateActivity(path, name, field, value string) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	found := false
	for i := range cat.Activities {
		if cat.Activities[i].Name == name {
			found = true
			switch field {
			case "description":
				cat.Activities[i].Description = value
			case "schedule":
				cat.Activities[i].Schedule = value
			case "max":
				capacity, err := strconv.Atoi(value)
				if err != nil || capacity < 1 {
					return fmt.Errorf("invalid max value: %s", value)
				}
				if capacity < len(cat.Activities[i].Participants) {
					return fmt.Errorf("max %d is below current roster size %d", capacity, len(cat.Activities[i].Participants))
				}
				cat.Activities[i].MaxParticipants = capacity
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("activity %q not found", name)
	}

	cat.LastUpdated = time.Now().Format(time.RFC3339)
	return catalog.Save(cat, path)
}

// validateCatalog runs both checks a server boot would: the JSON schema and
// the registry's seed invariants.
func validateCatalog(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	if err := validation.ValidateCatalog(raw); err != nil {
		return err
	}

	cat, err := catalog.Parse(raw)
	if err != nil {
		return err
	}

	if len(cat.Activities) == 0 {
		return fmt.Errorf("catalog contains no activities")
	}

	if _, err := registry.New(cat); err != nil {
		return fmt.Errorf("catalog violates roster invariants: %w", err)
	}

	fmt.Printf("Catalog validation passed. Found %d activities.\n", len(cat.Activities))
	return nil
}

func help() {
	fmt.Print(`
Usage: catalog-updater <command> [flags]

Commands:
  init     Write the built-in default catalog to a file
  add      Add a new activity to the catalog
  update   Update an existing activity's field
  validate Validate the catalog file
  help     Show this help message

Examples:
  catalog-updater init -path configs/activities.json
  catalog-updater add -name "Robotics Club" -description "Build and program robots" -schedule "Mondays, 4:00 PM - 5:30 PM" -max 16
  catalog-updater update -name "Robotics Club" -field max -value 20
  catalog-updater validate -path configs/activities.json

Use 'catalog-updater <command> -h' for more information about a command.
`)
}
