// Package filetype classifies files by name and extension so the theme
// can colour them. Only names are consulted; file contents are never read.
package filetype

import (
	"path/filepath"
	"strings"
)

// FileType is a broad category of file
type FileType int

const (
	None FileType = iota
	Image
	Video
	Music
	Lossless
	Crypto
	Document
	Compressed
	Temp
	Compiled
	Build
	Source
)

var typeNames = map[FileType]string{
	None:       "none",
	Image:      "image",
	Video:      "video",
	Music:      "music",
	Lossless:   "lossless",
	Crypto:     "crypto",
	Document:   "document",
	Compressed: "compressed",
	Temp:       "temp",
	Compiled:   "compiled",
	Build:      "build",
	Source:     "source",
}

func (t FileType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

var filenameTypes = map[string]FileType{}

var extensionTypes = map[string]FileType{}

func register(table map[string]FileType, t FileType, names string) {
	for _, name := range strings.Fields(names) {
		table[name] = t
	}
}

func init() {
	register(filenameTypes, Build, `Brewfile bsconfig.json BUILD BUILD.bazel build.gradle build.sbt
		build.xml Cargo.toml CMakeLists.txt composer.json configure Containerfile Dockerfile
		Earthfile flake.nix Gemfile GNUmakefile Gruntfile.coffee Gruntfile.js go.mod jsconfig.json
		Justfile justfile Makefile makefile meson.build mix.exs package.json Pipfile PKGBUILD
		Podfile pom.xml Procfile pyproject.toml Rakefile RoboFile.php SConstruct tsconfig.json
		Vagrantfile webpack.config.cjs webpack.config.js WORKSPACE`)
	register(filenameTypes, Crypto, `id_dsa id_ecdsa id_ecdsa_sk id_ed25519 id_ed25519_sk id_rsa`)

	register(extensionTypes, Build, `ninja`)
	register(extensionTypes, Image, `arw avif bmp cbr cbz cr2 dvi eps gif heic heif ico j2c j2k
		jfi jfif jif jp2 jpe jpeg jpf jpg jpx jxl nef orf pbm pgm png pnm ppm ps psd pxm raw
		stl svg tif tiff webp xcf xpm`)
	register(extensionTypes, Video, `avi flv h264 heics m2ts m2v m4v mkv mov mp4 mpeg mpg ogm
		ogv video vob webm wmv`)
	register(extensionTypes, Music, `aac m4a mka mp2 mp3 ogg opus wma`)
	register(extensionTypes, Lossless, `aif aifc aiff alac ape flac pcm wav wv`)
	register(extensionTypes, Crypto, `asc gpg kbx md5 p12 pem pfx pgp pub sha1 sha224 sha256
		sha384 sha512 sig signature`)
	register(extensionTypes, Document, `djvu doc docx eml fotd gdoc key keynote numbers odp
		ods odt pages pdf ppt pptx rtf xls xlsm xlsx`)
	register(extensionTypes, Compressed, `7z ar arj br bz bz2 bz3 cpio deb dmg gz iso lz lz4
		lzh lzma lzo phar qcow qcow2 rar rpm tar taz tbz tbz2 tc tgz tlz txz tz xz vdi vhd vmdk
		z zip zst`)
	register(extensionTypes, Temp, `bak bk bkp crdownload download fdmdownload part swn swo
		swp tmp`)
	register(extensionTypes, Compiled, `a bundle class cma cmi cmo cmx dll dylib elc ko lib o
		obj pyc pyd pyo so zwc`)
	register(extensionTypes, Source, `applescript as asa awk c c++ cabal cc clj cp cpp cr cs
		css csx cu cxx d dart di dpr el elm erl ex exs fs fsh fsi fsx go gradle groovy gvy h h++
		hpp hs htc hxx inc inl ipynb java jl js jsx kt kts less lhs lisp ltx lua m matlab ml mli
		mn nb p pas php pl pm pod pp ps1 psd1 psm1 purs py r rb rs sass scala scss sh sql swift
		tcl tex ts v vb vsh zsh`)
}

// sourceExtensions maps an output extension to the extensions it is
// usually generated from
var sourceExtensions = map[string][]string{
	"css": {"sass", "scss"},
	"js":  {"coffee", "ts"},
}

var texOutputs = strings.Fields("aux bbl bcf blg fdb_latexmk fls headfootlength lof log lot out pdf toc xdv")

// Extension returns the lowercase extension of name without the dot, or
// "" for names without one. Dotfiles such as ".bashrc" have no extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Detect returns the type of the file called name. siblings reports
// whether another file with the given name exists in the same directory;
// it may be nil when no directory is available.
func Detect(name string, siblings func(string) bool) FileType {
	if strings.HasPrefix(strings.ToLower(name), "readme") {
		return Build
	}
	if t, ok := filenameTypes[name]; ok {
		return t
	}

	ext := Extension(name)
	if generated(name, ext, siblings) {
		return Compiled
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if strings.HasSuffix(name, "~") || (len(name) > 1 && strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#")) {
		return Temp
	}
	return None
}

// generated reports whether the file looks like the output of a source file
// sitting next to it
func generated(name, ext string, siblings func(string) bool) bool {
	if siblings == nil || ext == "" {
		return false
	}
	sources := sourceExtensions[ext]
	for _, out := range texOutputs {
		if ext == out {
			sources = append(sources, "tex")
			break
		}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, src := range sources {
		if siblings(stem + "." + src) {
			return true
		}
	}
	return false
}
