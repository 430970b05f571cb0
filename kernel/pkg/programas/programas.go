package programas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

var ErrProgramaInexistente = errors.New("programa inexistente")

// Archivo es el formato de un programa en disco:
//
//	nombre: prg1
//	instrucciones: ["CPU 2", "IO", "CPU 3"]
type Archivo struct {
	Nombre        string   `yaml:"nombre" json:"nombre"`
	Instrucciones []string `yaml:"instrucciones" json:"instrucciones"`
}

// Programa arma el programa del archivo. Sin nombre usa el del path.
func (a Archivo) Programa(ruta string) (*internal.Programa, error) {
	grupos := make([][]internal.Instruccion, 0, len(a.Instrucciones))
	for i, linea := range a.Instrucciones {
		grupo, err := internal.ParsearInstruccion(linea)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		grupos = append(grupos, grupo)
	}

	nombre := a.Nombre
	if nombre == "" {
		nombre = strings.TrimSuffix(path.Base(ruta), path.Ext(ruta))
	}
	return internal.NuevoPrograma(nombre, grupos...), nil
}

// NuevoArchivo compacta las ráfagas de CPU consecutivas en "CPU <n>".
func NuevoArchivo(programa *internal.Programa) Archivo {
	archivo := Archivo{Nombre: programa.Nombre(), Instrucciones: make([]string, 0)}
	rafaga := 0
	cerrarRafaga := func() {
		if rafaga > 0 {
			archivo.Instrucciones = append(archivo.Instrucciones, fmt.Sprintf("%s %d", internal.InstruccionCPU, rafaga))
			rafaga = 0
		}
	}

	for _, instruccion := range programa.Instrucciones() {
		if instruccion == internal.InstruccionCPU {
			rafaga++
			continue
		}
		cerrarRafaga()
		archivo.Instrucciones = append(archivo.Instrucciones, string(instruccion))
	}
	cerrarRafaga()
	return archivo
}

// FileSystem guarda programas por path. Lo que no está en memoria se busca con afs,
// así que el path puede ser un archivo local o cualquier URL que afs soporte.
type FileSystem struct {
	Log       *slog.Logger
	fs        afs.Service
	mu        sync.RWMutex
	programas map[string]*internal.Programa
}

func NewFileSystem(fs afs.Service, logger *slog.Logger) *FileSystem {
	return &FileSystem{
		Log:       logger,
		fs:        fs,
		programas: make(map[string]*internal.Programa),
	}
}

// Write registra el programa en memoria bajo el path.
func (f *FileSystem) Write(ruta string, programa *internal.Programa) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.programas[ruta] = programa
}

// Read busca el programa en memoria y si no está lo carga del almacenamiento.
func (f *FileSystem) Read(ctx context.Context, ruta string) (*internal.Programa, error) {
	f.mu.RLock()
	programa, ok := f.programas[ruta]
	f.mu.RUnlock()
	if ok {
		return programa, nil
	}

	programa, err := f.Cargar(ctx, ruta)
	if err != nil {
		return nil, err
	}
	f.Write(ruta, programa)
	return programa, nil
}

// Cargar lee y decodifica un archivo de programa YAML.
func (f *FileSystem) Cargar(ctx context.Context, ruta string) (*internal.Programa, error) {
	URL := url.Normalize(ruta, file.Scheme)

	existe, err := f.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("verificar %s: %w", ruta, err)
	}
	if !existe {
		return nil, fmt.Errorf("%w: %s", ErrProgramaInexistente, ruta)
	}

	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", ruta, err)
	}

	var archivo Archivo
	if err := yaml.Unmarshal(data, &archivo); err != nil {
		f.Log.Error("Archivo de programa inválido",
			log.ErrAttr(err),
			log.StringAttr("path", ruta),
		)
		return nil, fmt.Errorf("decodificar %s: %w", ruta, err)
	}

	programa, err := archivo.Programa(ruta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ruta, err)
	}

	f.Log.Debug("Programa cargado",
		log.StringAttr("path", ruta),
		log.IntAttr("instrucciones", programa.Len()),
	)
	return programa, nil
}

// Guardar escribe el programa como YAML en el almacenamiento.
func (f *FileSystem) Guardar(ctx context.Context, ruta string, programa *internal.Programa) error {
	data, err := yaml.Marshal(NuevoArchivo(programa))
	if err != nil {
		return fmt.Errorf("codificar %s: %w", programa.Nombre(), err)
	}

	URL := url.Normalize(ruta, file.Scheme)
	if err := f.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("escribir %s: %w", ruta, err)
	}
	return nil
}
