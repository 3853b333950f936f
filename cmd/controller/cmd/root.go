package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/controller"
)

//nolint:gochecknoglobals // set by SetVersion from main
var (
	version = "development"
	gitsha  = "development"
)

func SetVersion(ver, sha string) {
	version = ver
	gitsha = sha
}

//nolint:gochecknoglobals // cobra command pattern
var rootCmd = &cobra.Command{
	Use:   "gerrit-operator",
	Short: "Kubernetes operator for Gerrit code review clusters",
	Long: `A Kubernetes operator that manages Gerrit clusters.
It reconciles GerritCluster, Gerrit, Receiver and GitGarbageCollection
resources into workloads, storage and the network entrypoint of the
configured ingress type.`,
	RunE:          runController,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	rootCmd.Flags().String("cluster-mode", string(config.ClusterModeHighAvailability),
		"Cluster mode (HIGH_AVAILABILITY, MULTISITE)")
	rootCmd.Flags().String("ingress-type", string(config.IngressTypeNone),
		"Network entrypoint type (none, ingress, istio, ambassador, gatewayapi)")
	rootCmd.Flags().String("cluster-domain", config.DefaultClusterDomain, "Kubernetes cluster domain")
	rootCmd.Flags().String("ingress-class-name", "", "IngressClass set on created Ingresses")
	rootCmd.Flags().String("istio-gateway-selector", config.DefaultIstioGatewaySelector,
		"Value of the istio label selecting the Istio ingress gateway")
	rootCmd.Flags().String("gateway-parent-name", "", "Gateway that created routes attach to (ingress type gatewayapi)")
	rootCmd.Flags().String("gateway-parent-namespace", "", "Namespace of the parent Gateway (defaults to the route namespace)")
	rootCmd.Flags().String("field-owner", config.DefaultFieldOwner, "Field manager name used for writes")
	rootCmd.Flags().Int("max-concurrent-reconciles", config.DefaultMaxConcurrentReconciles,
		"Maximum number of concurrent reconciles per controller")
	rootCmd.Flags().Duration("reload-timeout", config.DefaultReloadTimeout, "Timeout of each plugin reload call")
	rootCmd.Flags().String("metrics-addr", ":8080", "Address for metrics endpoint")
	rootCmd.Flags().String("health-addr", ":8081", "Address for health probe endpoint")

	// Leader election flags
	rootCmd.Flags().Bool("leader-elect", false, "Enable leader election for high availability")
	rootCmd.Flags().String("leader-election-namespace", "", "Namespace for leader election lease (defaults to controller namespace)")
	rootCmd.Flags().String("leader-election-name", "gerrit-operator-leader", "Name of the leader election lease")

	_ = viper.BindPFlags(rootCmd.Flags())
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetEnvPrefix("GERRIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("cluster-mode", string(config.ClusterModeHighAvailability))
	viper.SetDefault("ingress-type", string(config.IngressTypeNone))
	viper.SetDefault("cluster-domain", config.DefaultClusterDomain)
	viper.SetDefault("istio-gateway-selector", config.DefaultIstioGatewaySelector)
	viper.SetDefault("field-owner", config.DefaultFieldOwner)
	viper.SetDefault("max-concurrent-reconciles", config.DefaultMaxConcurrentReconciles)
	viper.SetDefault("reload-timeout", config.DefaultReloadTimeout)
	viper.SetDefault("metrics-addr", ":8080")
	viper.SetDefault("health-addr", ":8081")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "json")
	viper.SetDefault("leader-elect", false)
	viper.SetDefault("leader-election-name", "gerrit-operator-leader")
}

func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "command execution failed")
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	switch viper.GetString("log-level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if viper.GetString("log-format") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// operatorConfig reads the operator configuration from flags and GERRIT_*
// environment variables.
func operatorConfig() *config.OperatorConfig {
	return &config.OperatorConfig{
		ClusterMode:            config.ClusterMode(strings.ToUpper(viper.GetString("cluster-mode"))),
		IngressType:            config.IngressType(strings.ToLower(viper.GetString("ingress-type"))),
		ClusterDomain:          viper.GetString("cluster-domain"),
		IngressClassName:       viper.GetString("ingress-class-name"),
		IstioGatewaySelector:   viper.GetString("istio-gateway-selector"),
		GatewayParentName:      viper.GetString("gateway-parent-name"),
		GatewayParentNamespace: viper.GetString("gateway-parent-namespace"),
		FieldOwner:             viper.GetString("field-owner"),

		MaxConcurrentReconciles: viper.GetInt("max-concurrent-reconciles"),
		ReloadTimeout:           viper.GetDuration("reload-timeout"),

		MetricsAddr: viper.GetString("metrics-addr"),
		HealthAddr:  viper.GetString("health-addr"),

		LeaderElect:     viper.GetBool("leader-elect"),
		LeaderElectNS:   viper.GetString("leader-election-namespace"),
		LeaderElectName: viper.GetString("leader-election-name"),
	}
}

//nolint:noinlineerr // inline error handling is fine here
func runController(_ *cobra.Command, _ []string) error {
	logger := setupLogger()
	slog.SetDefault(logger)

	ctrl.SetLogger(logr.FromSlogHandler(logger.Handler()))

	logger.Info("starting gerrit-operator",
		"version", version,
		"gitsha", gitsha,
	)

	cfg := operatorConfig()

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := controller.Run(ctx, cfg); err != nil {
		return errors.Wrap(err, "failed to run controller")
	}

	return nil
}
