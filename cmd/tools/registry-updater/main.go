// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"krishi-assistant/pkg/registry"
)

const defaultPath = "configs/lexicon.json"

func main() {
	addLocationCmd := flag.NewFlagSet("add-location", flag.ExitOnError)
	addCommodityCmd := flag.NewFlagSet("add-commodity", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	locPath := addLocationCmd.String("path", defaultPath, "Path to registry file")
	name := addLocationCmd.String("name", "", "Canonical place name (e.g., Sitapur)")
	state := addLocationCmd.String("state", "", "State the place belongs to")
	kind := addLocationCmd.String("kind", "city", "Place kind (city, state)")
	lat := addLocationCmd.Float64("lat", 0, "Latitude")
	lon := addLocationCmd.Float64("lon", 0, "Longitude")
	locAliases := addLocationCmd.String("aliases", "", "Comma separated aliases")

	comPath := addCommodityCmd.String("path", defaultPath, "Path to registry file")
	commodity := addCommodityCmd.String("name", "", "Canonical commodity name (e.g., jowar)")
	comAliases := addCommodityCmd.String("aliases", "", "Comma separated aliases")

	valPath := validateCmd.String("path", defaultPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-location":
		addLocationCmd.Parse(os.Args[2:])
		if *name == "" || *state == "" {
			fmt.Println("Error: name and state are required for add-location.")
			addLocationCmd.Usage()
			os.Exit(1)
		}
		entry := registry.LocationEntry{
			Name:    *name,
			State:   *state,
			Kind:    *kind,
			Lat:     *lat,
			Lon:     *lon,
			Aliases: splitList(*locAliases),
		}
		if err := update(*locPath, func(reg *registry.LexiconRegistry) error {
			return reg.AddLocation(entry)
		}); err != nil {
			fmt.Printf("Error adding location: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added location: %s\n", *name)

	case "add-commodity":
		addCommodityCmd.Parse(os.Args[2:])
		if *commodity == "" {
			fmt.Println("Error: name is required for add-commodity.")
			addCommodityCmd.Usage()
			os.Exit(1)
		}
		if err := update(*comPath, func(reg *registry.LexiconRegistry) error {
			reg.AddCommodityAliases(*commodity, splitList(*comAliases)...)
			return nil
		}); err != nil {
			fmt.Printf("Error adding commodity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated commodity: %s\n", *commodity)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*valPath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d locations and %d commodities.\n",
			len(reg.Locations), len(reg.Commodities))

	case "help":
		fallthrough
	default:
		help()
	}
}

// update loads the registry at path, or starts an empty one, applies fn and
// saves it only if the result still validates.
func update(path string, fn func(*registry.LexiconRegistry) error) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.LexiconRegistry{Version: "1.0.0"}
	}

	if err := fn(reg); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().Format("2006-01-02")

	if err := reg.Validate(); err != nil {
		return err
	}
	return reg.Save(path)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add-location   Add a place to the lexicon registry
  add-commodity  Add a commodity or extra aliases for one
  validate       Validate the registry file
  help           Show this help message

Examples:
  registry-updater add-location -name Sitapur -state "Uttar Pradesh" -lat 27.568 -lon 80.679 -aliases "सीतापुर"
  registry-updater add-commodity -name jowar -aliases "sorghum,ज्वार"
  registry-updater validate -path configs/lexicon.json

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
