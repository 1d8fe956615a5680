package main

import (
	"fmt"
	"os"
	"strings"

	"code.cloudfoundry.org/lager"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	sharedresources "github.com/concourse/sharedresources"
)

// resourceSaver is the write-path slice of registry.Store this command
// needs; both registry.SQLStore and registry.MemoryStore satisfy it.
type resourceSaver interface {
	SaveResource(sharedresources.Resource) error
}

// addResourceCommand loads a single resource definition directly into
// the registry's store, the same "skip the UI, write straight to
// storage" shape as datum-cloud-milo's `add-resources` command. Resource
// CRUD is out of scope as a UI (spec.md §1's Non-goals), but some
// surface has to create the row a deployment's project hierarchy
// resolves against, and an operator loading a handful of pool
// definitions by hand is the narrowest one.
func addResourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-resource",
		Short: "Load a single resource definition directly into the registry store",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := lager.NewLogger("add-resource")
			logger.RegisterSink(lager.NewWriterSink(os.Stdout, lager.INFO))

			registryStore, _, closeStores, err := openStores(logger, cmd.Flags())
			if err != nil {
				return err
			}
			defer closeStores()

			saver, ok := registryStore.(resourceSaver)
			if !ok {
				return fmt.Errorf("store %T does not support saving resources", registryStore)
			}

			res, err := resourceFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			if err := saver.SaveResource(res); err != nil {
				return fmt.Errorf("saving resource: %w", err)
			}

			logger.Info("saved-resource", lager.Data{"id": res.ID, "name": res.Name, "project": res.ProjectID})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("id", "", "resource id; a UUID is generated when omitted")
	flags.String("project", "", "owning project id (required)")
	flags.String("name", "", "resource name, unique within the project (required)")
	flags.String("kind", "quoted", `resource kind: "quoted" or "custom"`)
	flags.Int("quota", sharedresources.Infinite, "concurrent-holder quota for a quoted resource; leave at the default for an unlimited pool")
	flags.String("values", "", "comma-separated pool values for a custom resource")

	return cmd
}

func resourceFromFlags(flags interface {
	GetString(string) (string, error)
	GetInt(string) (int, error)
}) (sharedresources.Resource, error) {
	id, err := flags.GetString("id")
	if err != nil {
		return sharedresources.Resource{}, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	projectID, err := flags.GetString("project")
	if err != nil {
		return sharedresources.Resource{}, err
	}
	if projectID == "" {
		return sharedresources.Resource{}, fmt.Errorf("--project is required")
	}

	name, err := flags.GetString("name")
	if err != nil {
		return sharedresources.Resource{}, err
	}
	if name == "" {
		return sharedresources.Resource{}, fmt.Errorf("--name is required")
	}

	kindFlag, err := flags.GetString("kind")
	if err != nil {
		return sharedresources.Resource{}, err
	}

	switch kindFlag {
	case "quoted":
		quota, err := flags.GetInt("quota")
		if err != nil {
			return sharedresources.Resource{}, err
		}
		return sharedresources.NewQuotedResource(id, projectID, name, quota), nil
	case "custom":
		values, err := flags.GetString("values")
		if err != nil {
			return sharedresources.Resource{}, err
		}
		var pool []string
		if values != "" {
			pool = strings.Split(values, ",")
		}
		return sharedresources.NewCustomResource(id, projectID, name, pool), nil
	default:
		return sharedresources.Resource{}, fmt.Errorf("unrecognized --kind %q, want \"quoted\" or \"custom\"", kindFlag)
	}
}
