package vocab

import (
	"errors"
	"io/ioutil"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"norya.com/report/logger"
	"norya.com/report/types"
)

// languageFile is the YAML shape of one additional language. Everything in it
// is merged over the English base vocabulary, so a file only needs to list the
// localized additions.
type languageFile struct {
	Tag              string                      `yaml:"tag"`
	ReportTitle      string                      `yaml:"report_title"`
	SectionTitles    map[string]types.SectionKey `yaml:"section_titles"`
	SectionKeywords  []SectionKeyword            `yaml:"section_keywords"`
	StatusWords      map[string]types.Status     `yaml:"status_words"`
	StatusFragments  []StatusFragment            `yaml:"status_fragments"`
	StatusLabels     map[types.Status]string     `yaml:"status_labels"`
	ReferenceMarkers []string                    `yaml:"reference_markers"`
	RiskHigh         []string                    `yaml:"risk_high"`
	RiskAttention    []string                    `yaml:"risk_attention"`
	MsgOutOfRange    string                      `yaml:"msg_out_of_range"`
	MsgAllInRange    string                      `yaml:"msg_all_in_range"`
}

// LoadDir reads every *.yaml language file from dirPath into the registry.
// A broken file is logged and skipped, the rest still load.
func (reg *Registry) LoadDir(dirPath string) error {
	vocabLogger := logger.NewLogger("Vocabulary loader")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		filePath := path.Join(dirPath, f.Name())
		buf, err := ioutil.ReadFile(filePath)
		if err != nil {
			vocabLogger.Err(err).Str("file", filePath).Msg("Failed to read language file")
			continue
		}
		lang, err := parseLanguage(buf)
		if err != nil {
			vocabLogger.Err(err).Str("file", filePath).Msg("Failed to parse language file")
			continue
		}
		reg.languages[lang.Tag] = lang
		vocabLogger.Info().Str("tag", lang.Tag).Msgf("Loaded language from %s", f.Name())
	}
	return nil
}

func parseLanguage(buf []byte) (Language, error) {
	var file languageFile
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return Language{}, err
	}
	if file.Tag == "" {
		return Language{}, errors.New("language file has no tag")
	}
	lang := english()
	lang.Tag = file.Tag
	if file.ReportTitle != "" {
		lang.ReportTitle = file.ReportTitle
	}
	for title, key := range file.SectionTitles {
		lang.SectionTitles[strings.ToLower(title)] = key
	}
	lang.SectionKeywords = append(lang.SectionKeywords, file.SectionKeywords...)
	for word, status := range file.StatusWords {
		lang.StatusWords[strings.ToLower(word)] = status
	}
	lang.StatusFragments = append(lang.StatusFragments, file.StatusFragments...)
	for status, label := range file.StatusLabels {
		lang.StatusLabels[status] = label
	}
	lang.ReferenceMarkers = append(lang.ReferenceMarkers, file.ReferenceMarkers...)
	lang.RiskHigh = append(lang.RiskHigh, file.RiskHigh...)
	lang.RiskAttention = append(lang.RiskAttention, file.RiskAttention...)
	if file.MsgOutOfRange != "" {
		lang.MsgOutOfRange = file.MsgOutOfRange
	}
	if file.MsgAllInRange != "" {
		lang.MsgAllInRange = file.MsgAllInRange
	}
	return lang, nil
}
