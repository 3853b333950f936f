package builder

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"
	"sigs.k8s.io/yaml"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// Configuration file names.
const (
	KeyGerritConfig           = "gerrit.config"
	KeyGerritInitConfig       = "gerrit-init.yaml"
	KeyHealthcheckConfig      = "healthcheck.config"
	KeyHighAvailabilityConfig = "high-availability.config"
)

// Container paths.
const (
	sitePath        = "/var/gerrit"
	sharedPath      = "/var/mnt"
	configMountPath = "/var/mnt/etc/config"
	secretMountPath = "/var/mnt/etc/secret"
	initConfigPath  = "/var/config"
	pluginCachePath = "/var/mnt/plugins"
	javaHome        = "/usr/lib/jvm/java-21-openjdk"
	debugPort       = 8000
)

// loadOptions parse git-config style files. Multi-valued keys are kept.
//
//nolint:gochecknoglobals // read-only parser options
var loadOptions = ini.LoadOptions{
	AllowShadows:        true,
	IgnoreInlineComment: true,
}

// defaultHealthcheckConfig disables checks that need credentials.
const defaultHealthcheckConfig = `[healthcheck "auth"]
  enabled = false
[healthcheck "querychanges"]
  enabled = false
`

// CanonicalWebURL returns the URL users reach the Gerrit under: the cluster
// entrypoint when exposed, the Service otherwise.
func CanonicalWebURL(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig) string {
	if url := gerrit.Spec.Ingress.URL(); url != "" {
		return url
	}

	return ServiceURL(gerrit, cfg)
}

// ServiceURL returns the cluster-internal base URL of a Gerrit.
func ServiceURL(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig) string {
	return fmt.Sprintf("http://%s.%s.svc.%s:%d",
		names.GerritService(gerrit.Name), gerrit.Namespace, cfg.ClusterDomain, gerrit.Spec.GetHTTPPort())
}

// GerritConfig renders gerrit.config: the user's file completed with the
// settings the operator owns.
//
//nolint:funlen // one setting per line
func GerritConfig(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig) (string, error) {
	file, err := ini.LoadSources(loadOptions, []byte(gerrit.Spec.ConfigFiles[KeyGerritConfig]))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse gerrit.config")
	}

	set := func(section, key, value string) {
		file.Section(section).Key(key).SetValue(value)
	}

	set("gerrit", "basePath", "git")
	set("gerrit", "canonicalWebUrl", CanonicalWebURL(gerrit, cfg))

	if gerrit.Spec.ServerID != "" {
		set("gerrit", "serverId", gerrit.Spec.ServerID)
	}

	listenURL := fmt.Sprintf("proxy-http://*:%d/", v1alpha1.DefaultHTTPPort)
	if gerrit.Spec.Ingress.Enabled && gerrit.Spec.Ingress.TLS.Enabled {
		listenURL = fmt.Sprintf("proxy-https://*:%d/", v1alpha1.DefaultHTTPPort)
	}

	set("httpd", "listenUrl", listenURL)

	if gerrit.Spec.Service.SSHPort > 0 {
		set("sshd", "listenAddress", fmt.Sprintf("*:%d", v1alpha1.DefaultSSHPort))

		if gerrit.Spec.Ingress.Enabled && gerrit.Spec.Ingress.SSH.Enabled && gerrit.Spec.Ingress.Host != "" {
			set("sshd", "advertisedAddress", fmt.Sprintf("%s:%d", gerrit.Spec.Ingress.Host, gerrit.Spec.Service.SSHPort))
		}
	} else {
		set("sshd", "listenAddress", "off")
	}

	set("cache", "directory", "cache")
	set("container", "user", "gerrit")
	set("container", "javaHome", javaHome)
	set("container", "replica", fmt.Sprint(gerrit.Spec.GetMode() == v1alpha1.GerritModeReplica))

	if !file.Section("index").HasKey("type") {
		set("index", "type", "lucene")
	}

	if gerrit.Spec.Debug.Enabled {
		err = addJavaOption(file, debugJavaOption(gerrit.Spec.Debug.Suspend))
		if err != nil {
			return "", err
		}
	}

	switch gerrit.Spec.RefDB.GetDatabase() {
	case v1alpha1.RefDatabaseZookeeper:
		if gerrit.Spec.RefDB.Zookeeper == nil {
			return "", errors.New("refdb ZOOKEEPER requires zookeeper settings")
		}

		set("ref-database", "enabled", "true")
		set(`plugin "zookeeper-refdb"`, "connectString", gerrit.Spec.RefDB.Zookeeper.ConnectString)

		if gerrit.Spec.RefDB.Zookeeper.RootNode != "" {
			set(`plugin "zookeeper-refdb"`, "rootNode", gerrit.Spec.RefDB.Zookeeper.RootNode)
		}
	case v1alpha1.RefDatabaseSpanner:
		if gerrit.Spec.RefDB.Spanner == nil {
			return "", errors.New("refdb SPANNER requires spanner settings")
		}

		set("ref-database", "enabled", "true")
		set(`plugin "spanner-refdb"`, "projectName", gerrit.Spec.RefDB.Spanner.ProjectName)
		set(`plugin "spanner-refdb"`, "instance", gerrit.Spec.RefDB.Spanner.Instance)
		set(`plugin "spanner-refdb"`, "database", gerrit.Spec.RefDB.Spanner.Database)
	case v1alpha1.RefDatabaseNone:
	}

	if cfg.IsMultisite() {
		set("gerrit", "instanceId", gerrit.Name)
	}

	var buf bytes.Buffer

	_, err = file.WriteTo(&buf)
	if err != nil {
		return "", errors.Wrap(err, "failed to render gerrit.config")
	}

	return buf.String(), nil
}

func addJavaOption(file *ini.File, option string) error {
	section := file.Section("container")
	if !section.HasKey("javaOptions") {
		section.Key("javaOptions").SetValue(option)

		return nil
	}

	for _, existing := range section.Key("javaOptions").ValueWithShadows() {
		if existing == option {
			return nil
		}
	}

	err := section.Key("javaOptions").AddShadow(option)
	if err != nil {
		return errors.Wrap(err, "failed to add java option")
	}

	return nil
}

func debugJavaOption(suspend bool) string {
	flag := "n"
	if suspend {
		flag = "y"
	}

	return fmt.Sprintf("-Xdebug -Xrunjdwp:transport=dt_socket,server=y,suspend=%s,address=*:%d", flag, debugPort)
}

// ReadCanonicalWebURL extracts gerrit.canonicalWebUrl from a rendered gerrit.config.
func ReadCanonicalWebURL(gerritConfig string) (string, error) {
	file, err := ini.LoadSources(loadOptions, []byte(gerritConfig))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse gerrit.config")
	}

	url := file.Section("gerrit").Key("canonicalWebUrl").String()
	if url == "" {
		return "", errors.New("gerrit.config has no canonicalWebUrl")
	}

	return url, nil
}

// highAvailabilityConfig renders the high-availability plugin configuration
// of a primary running more than one pod.
func highAvailabilityConfig(gerrit *v1alpha1.Gerrit) (string, error) {
	file := ini.Empty(loadOptions)

	set := func(section, key, value string) {
		file.Section(section).Key(key).SetValue(value)
	}

	set("main", "sharedDirectory", "shared")
	set("peerInfo", "strategy", "jgroups")
	set("jgroups", "clusterName", gerrit.Name)
	set("jgroups", "kubernetes", "true")
	set(`jgroups "kubernetes"`, "namespace", gerrit.Namespace)
	set(`jgroups "kubernetes"`, "label", names.LabelInstance+"="+names.LabelValue(gerrit.Name))
	set("index", "synchronizeForced", "true")
	set("healthcheck", "enable", "false")

	var buf bytes.Buffer

	_, err := file.WriteTo(&buf)
	if err != nil {
		return "", errors.Wrap(err, "failed to render high-availability.config")
	}

	return buf.String(), nil
}

// initPlugin is a plugin entry of gerrit-init.yaml.
type initPlugin struct {
	Name             string `json:"name"`
	URL              string `json:"url,omitempty"`
	Sha1             string `json:"sha1,omitempty"`
	InstallAsLibrary bool   `json:"installAsLibrary,omitempty"`
}

// initConfig is the content of gerrit-init.yaml.
type initConfig struct {
	CanonicalWebURL    string       `json:"canonicalWebUrl"`
	CACertPath         string       `json:"caCertPath"`
	PluginCacheEnabled bool         `json:"pluginCacheEnabled"`
	PluginCacheDir     string       `json:"pluginCacheDir,omitempty"`
	Plugins            []initPlugin `json:"plugins"`
	Libs               []initPlugin `json:"libs"`
	HighAvailability   bool         `json:"highAvailability"`
	ClusterMode        string       `json:"clusterMode"`
	RefDB              string       `json:"refdb"`
}

// GerritInitConfig renders gerrit-init.yaml for the init container.
func GerritInitConfig(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig, canonicalWebURL string) (string, error) {
	content := initConfig{
		CanonicalWebURL:    canonicalWebURL,
		CACertPath:         secretMountPath + "/ca.crt",
		PluginCacheEnabled: gerrit.Spec.Storage.PluginCache.Enabled,
		Plugins:            toInitPlugins(gerrit.Spec.Plugins),
		Libs:               toInitPlugins(gerrit.Spec.Libs),
		HighAvailability:   isHighAvailability(gerrit, cfg),
		ClusterMode:        string(cfg.ClusterMode),
		RefDB:              string(gerrit.Spec.RefDB.GetDatabase()),
	}

	if content.PluginCacheEnabled {
		content.PluginCacheDir = pluginCachePath
	}

	data, err := yaml.Marshal(content)
	if err != nil {
		return "", errors.Wrap(err, "failed to render gerrit-init.yaml")
	}

	return string(data), nil
}

func toInitPlugins(plugins []v1alpha1.GerritPlugin) []initPlugin {
	result := make([]initPlugin, 0, len(plugins))
	for _, plugin := range plugins {
		result = append(result, initPlugin(plugin))
	}

	return result
}

// isHighAvailability reports whether a Gerrit runs as an HA primary.
func isHighAvailability(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig) bool {
	return cfg.ClusterMode == config.ClusterModeHighAvailability &&
		gerrit.Spec.GetMode() == v1alpha1.GerritModePrimary &&
		gerrit.Spec.GetReplicas() > 1
}
