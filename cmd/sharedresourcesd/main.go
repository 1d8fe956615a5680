// Command sharedresourcesd wires C1-C8 plus the metrics and api
// packages into a standalone process: it opens the Postgres connection
// and runs migrations, constructs the registry/store/affinity/arbiter,
// and serves the monitoring HTTP surface, including POST /decide.
//
// This binary is a reframing of the TeamCity SharedResources plugin as
// a process a CI server's scheduler calls into (or embeds) rather than
// a plugin loaded inside one; the decision core itself is unchanged.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/concourse/sharedresources/affinity"
	"github.com/concourse/sharedresources/api"
	"github.com/concourse/sharedresources/arbiter"
	"github.com/concourse/sharedresources/dbng"
	"github.com/concourse/sharedresources/inspect"
	"github.com/concourse/sharedresources/metrics"
	"github.com/concourse/sharedresources/registry"
	"github.com/concourse/sharedresources/store"
	"github.com/concourse/sharedresources/taken"
)

func main() {
	cmd := newCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sharedresourcesd",
		Short: "Shared-resource lock arbiter: decides whether a queued build may start.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags())
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.String("database", "", "Postgres connection string (required)")
	persistent.Bool("no-db", false, "run against an in-memory store instead of Postgres, for local smoke testing")

	flags := cmd.Flags()
	flags.String("listen", ":8080", "address for the monitoring HTTP surface")
	flags.Bool("resources-in-chains", true, "whether composite build chains share resources transparently (teamcity.sharedResources.resourcesInChains.enabled)")

	cmd.AddCommand(addResourceCommand())

	return cmd
}

// openStores constructs the registry.Store and store.Store a subcommand
// needs, honoring the --database/--no-db persistent flags the same way
// run does.
func openStores(logger lager.Logger, flags *pflag.FlagSet) (registry.Store, store.Store, func(), error) {
	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, nil, nil, err
	}

	if noDB {
		logger.Info("running-without-database")
		return registry.NewMemoryStore(), store.NewMemoryStore(), func() {}, nil
	}

	dsn, err := flags.GetString("database")
	if err != nil {
		return nil, nil, nil, err
	}
	if dsn == "" {
		return nil, nil, nil, fmt.Errorf("--database is required unless --no-db is set")
	}

	conn, err := dbng.Open(logger.Session("dbng"), "postgres", dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	registryStore := registry.NewSQLStore(conn)
	lockStore := store.NewSQLStore(logger.Session("lock-store"), conn, conn.Bus())
	return registryStore, lockStore, func() { conn.Close() }, nil
}

func run(flags *pflag.FlagSet) error {
	logger := lager.NewLogger("sharedresourcesd")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, lager.INFO))

	resourcesInChains, err := flags.GetBool("resources-in-chains")
	if err != nil {
		return err
	}

	listenAddr, err := flags.GetString("listen")
	if err != nil {
		return err
	}

	registryStore, lockStore, closeStores, err := openStores(logger, flags)
	if err != nil {
		return err
	}
	defer closeStores()

	// A standalone process has no project hierarchy of its own; a real
	// deployment embeds this binary's packages directly and supplies its
	// own ProjectTree backed by the host scheduler's project storage. An
	// empty StaticTree resolves every project to itself with no
	// ancestors.
	tree := registry.StaticTree{}
	reg := registry.New(logger.Session("registry"), registryStore, tree)
	inspector := inspect.New(logger.Session("inspector"), reg)
	collector := taken.NewCollector(lockStore)
	aff := affinity.New()

	recorder := metrics.New(prometheus.DefaultRegisterer)
	go observeAffinitySize(aff)

	a := arbiter.New(reg, inspector, collector, aff, buildTypeLabeler,
		arbiter.WithResourcesInChains(resourcesInChains),
		arbiter.WithRecorder(recorder),
	)

	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(logger, reg, lockStore, aff, a).Handler())
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("listening", lager.Data{"addr": listenAddr})
	return http.ListenAndServe(listenAddr, mux)
}

// buildTypeLabeler is the default HolderLabeler: absent an external
// build-configuration lookup (out of scope per spec.md §1), the
// promotion id itself is the best label this process can print in a
// wait reason.
func buildTypeLabeler(promotionID string) string {
	return promotionID
}

// observeAffinitySize keeps the affinity_set_size gauge current by
// sampling the live snapshot on a short ticker, rather than on every
// Decide call where the extra map copy isn't worth paying for.
func observeAffinitySize(aff *affinity.ResourceAffinity) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		metrics.ObserveAffinitySize(aff)
	}
}
