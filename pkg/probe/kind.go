package probe

import (
	"github.com/arthur-debert/droidsdk/pkg/errors"
)

// Kind identifies a family of SDK packages that share an install location
type Kind int

// Global package kinds
const (
	KindUnknown Kind = iota
	KindSDKTools
	KindPlatformTools
	KindBuildTools
	KindSupportLibrary
	KindSupportRepository
	KindAdMob
	KindAnalytics
	KindPlayServices
	KindGoogleRepository
	KindPlayAPKExpansion
	KindPlayBilling
	KindPlayLicensing
	KindWebDriver
	KindDocumentation
	KindHAXM

	// API scoped kinds
	KindSamples
	KindSDKPlatform
	KindARMImage
	KindIntelImage
	KindMIPSImage
	KindGoogleAPIs
	KindSources
)

// Catalog titles for the kinds the planner refers to by name
const (
	TitleSDKTools       = "Android SDK Tools"
	TitlePlatformTools  = "Android SDK Platform-tools"
	TitleBuildTools     = "Android SDK Build-tools"
	TitleSupportLibrary = "Android Support Library"
	TitleHAXM           = "Intel x86 Emulator Accelerator (HAXM)"
	TitleSDKPlatform    = "SDK Platform"
	TitleARMImage       = "ARM EABI v7a System Image"
	TitleIntelImage     = "Intel x86 Atom System Image"
	TitleMIPSImage      = "MIPS System Image"
)

var titles = map[Kind]string{
	KindSDKTools:          TitleSDKTools,
	KindPlatformTools:     TitlePlatformTools,
	KindBuildTools:        TitleBuildTools,
	KindSupportLibrary:    TitleSupportLibrary,
	KindSupportRepository: "Android Support Repository",
	KindAdMob:             "Google AdMob Ads SDK",
	KindAnalytics:         "Google Analytics App Tracking SDK",
	KindPlayServices:      "Google Play services",
	KindGoogleRepository:  "Google Repository",
	KindPlayAPKExpansion:  "Google Play APK Expansion Library",
	KindPlayBilling:       "Google Play Billing Library",
	KindPlayLicensing:     "Google Play Licensing Library",
	KindWebDriver:         "Google Web Driver",
	KindDocumentation:     "Documentation for Android SDK",
	KindHAXM:              TitleHAXM,
	KindSamples:           "Samples for SDK",
	KindSDKPlatform:       TitleSDKPlatform,
	KindARMImage:          TitleARMImage,
	KindIntelImage:        TitleIntelImage,
	KindMIPSImage:         TitleMIPSImage,
	KindGoogleAPIs:        "Google APIs",
	KindSources:           "Sources for Android SDK",
}

var byTitle = func() map[string]Kind {
	m := make(map[string]Kind, len(titles))
	for kind, title := range titles {
		m[title] = kind
	}
	return m
}()

// Title returns the catalog title of the kind
func (k Kind) Title() string {
	if t, ok := titles[k]; ok {
		return t
	}
	return "unknown"
}

func (k Kind) String() string {
	return k.Title()
}

// APIScoped reports whether packages of this kind are installed per API level
func (k Kind) APIScoped() bool {
	_, ok := apiRules[k]
	return ok
}

// KindForTitle returns the kind of a normalized catalog title
func KindForTitle(title string) (Kind, error) {
	if kind, ok := byTitle[title]; ok {
		return kind, nil
	}
	return KindUnknown, errors.Newf(errors.ErrUnknownKind, "no install check for package %q", title).
		WithDetail("title", title)
}

// ImageKinds maps a system image architecture to its kind
var ImageKinds = map[string]Kind{
	"arm":   KindARMImage,
	"intel": KindIntelImage,
	"mips":  KindMIPSImage,
}
