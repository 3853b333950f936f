package controller

import (
	"context"

	"github.com/cockroachdb/errors"
	snapshotv1 "github.com/kubernetes-csi/external-snapshotter/client/v6/apis/volumesnapshot/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	"sigs.k8s.io/controller-runtime/pkg/metrics/server"
	gatewayv1 "sigs.k8s.io/gateway-api/apis/v1"
	gatewayv1alpha2 "sigs.k8s.io/gateway-api/apis/v1alpha2"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/metrics"
)

// eventSource is the component name of recorded events.
const eventSource = "gerrit-operator"

// NewScheme returns a scheme with every kind the operator reads or writes.
func NewScheme() (*runtime.Scheme, error) {
	scheme := runtime.NewScheme()

	for _, add := range []func(*runtime.Scheme) error{
		clientgoscheme.AddToScheme,
		v1alpha1.AddToScheme,
		snapshotv1.AddToScheme,
		gatewayv1.Install,
		gatewayv1alpha2.AddToScheme,
	} {
		err := add(scheme)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build scheme")
		}
	}

	return scheme, nil
}

// setupFunc wires one reconciler into the manager.
type setupFunc struct {
	name  string
	setup func(deps *Dependencies, mgr ctrl.Manager) error
}

//nolint:gochecknoglobals // static controller registry
var controllers = []setupFunc{
	{name: clusterControllerName, setup: func(deps *Dependencies, mgr ctrl.Manager) error {
		r, err := NewGerritClusterReconciler(deps)
		if err != nil {
			return err
		}

		return r.SetupWithManager(mgr)
	}},
	{name: gerritControllerName, setup: func(deps *Dependencies, mgr ctrl.Manager) error {
		r, err := NewGerritReconciler(deps)
		if err != nil {
			return err
		}

		return r.SetupWithManager(mgr)
	}},
	{name: receiverControllerName, setup: func(deps *Dependencies, mgr ctrl.Manager) error {
		r, err := NewReceiverReconciler(deps)
		if err != nil {
			return err
		}

		return r.SetupWithManager(mgr)
	}},
	{name: gitGCControllerName, setup: func(deps *Dependencies, mgr ctrl.Manager) error {
		r, err := NewGitGarbageCollectionReconciler(deps)
		if err != nil {
			return err
		}

		return r.SetupWithManager(mgr)
	}},
}

// Run initializes and starts the controller manager with the provided
// configuration. It blocks until the context is cancelled or an error
// occurs. Invalid configuration or workflow graphs abort before the
// manager starts.
//
//nolint:funlen,noinlineerr // controller setup requires multiple steps
func Run(ctx context.Context, cfg *config.OperatorConfig) error {
	logger := log.FromContext(ctx).WithName("manager")

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("initializing controller manager",
		"clusterMode", cfg.ClusterMode,
		"ingressType", cfg.IngressType,
		"maxConcurrentReconciles", cfg.MaxConcurrentReconciles,
	)

	scheme, err := NewScheme()
	if err != nil {
		return err
	}

	mgrOptions := ctrl.Options{
		Scheme: scheme,
		Metrics: server.Options{
			BindAddress: cfg.MetricsAddr,
		},
		HealthProbeBindAddress: cfg.HealthAddr,
	}

	if cfg.LeaderElect {
		mgrOptions.LeaderElection = true
		mgrOptions.LeaderElectionID = cfg.LeaderElectName
		mgrOptions.LeaderElectionNamespace = cfg.LeaderElectNS

		logger.Info("leader election enabled",
			"id", cfg.LeaderElectName,
			"namespace", cfg.LeaderElectNS,
		)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), mgrOptions)
	if err != nil {
		return errors.Wrap(err, "failed to create manager")
	}

	deps := &Dependencies{
		Client:  mgr.GetClient(),
		Scheme:  mgr.GetScheme(),
		Config:  cfg,
		Metrics: metrics.NewCollector(ctrlmetrics.Registry),
		//nolint:staticcheck // core/v1 events are what kubectl describe shows
		Recorder: mgr.GetEventRecorderFor(eventSource),
	}

	for _, c := range controllers {
		if err := c.setup(deps, mgr); err != nil {
			return errors.Wrapf(err, "failed to setup %s controller", c.name)
		}
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return errors.Wrap(err, "failed to set up health check")
	}

	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return errors.Wrap(err, "failed to set up ready check")
	}

	logger.Info("starting manager")

	if err := mgr.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start manager")
	}

	return nil
}
