package detector

type Type string

const (
	TypeLOF             Type = "LOF"
	TypeKNN             Type = "KNN"
	TypeIsolationForest Type = "ISOLATION_FOREST"
	TypeGaussian        Type = "GAUSSIAN"
	TypeKDE             Type = "KDE"
)

// Types lists every detector in a stable order.
var Types = []Type{TypeLOF, TypeKNN, TypeIsolationForest, TypeGaussian, TypeKDE}

type Config struct {
	Types         []Type  `envconfig:"SODKIT_DETECTORS" default:"LOF,KNN,ISOLATION_FOREST,GAUSSIAN,KDE" toml:"types"`
	Contamination float64 `envconfig:"SODKIT_CONTAMINATION" default:"0.1" toml:"contamination"`
}
