// Package refdata owns the nationality and document-type reference indexes.
// Both lists come from DOTS, are cached in Redis so restarts do not hammer the
// integration layer, and degrade to empty when neither source can serve.
package refdata

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"guestdesk/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	nationalitiesCacheKey = "refdata:nationalities"
	documentTypesCacheKey = "refdata:doctypes"
)

// Gateway is the slice of the DOTS client the reference-data service needs.
type Gateway interface {
	GetNationalityList(ctx context.Context) ([]models.Country, error)
	FetchDocumentTypeMaster(ctx context.Context) ([]models.DocumentTypeMapping, error)
}

// Service translates between country codes and display names and between
// kiosk and PMS document-type codes.
type Service interface {
	// Load builds the indexes, preferring the Redis cache over a live fetch.
	Load(ctx context.Context) error
	// Refresh re-fetches both lists from DOTS and rewrites the cache.
	Refresh(ctx context.Context) error
	Countries() []models.Country
	DocumentTypes() []models.DocumentTypeMapping
	// NationalityCode translates a free-text country name to its code, or ""
	// when the name is unknown.
	NationalityCode(name string) string
	// NationalityName translates a country code to its display name, or ""
	// when the code is unknown.
	NationalityName(code string) string
	// OperaDocumentCode translates a kiosk document code to the PMS's own
	// code. Matching ignores case and surrounding whitespace. Unknown codes
	// come back unchanged so a push still carries something the operator can
	// recognise.
	OperaDocumentCode(localCode string) string
}

// DefaultService is the production implementation.
type DefaultService struct {
	Gateway  Gateway
	Cache    *redis.Client
	Logger   *zap.Logger
	CacheTTL time.Duration

	mu         sync.RWMutex
	countries  []models.Country
	docTypes   []models.DocumentTypeMapping
	nameToCode map[string]string
	codeToName map[string]string
	docToOpera map[string]string
}

func (s *DefaultService) Load(ctx context.Context) error {
	countries, err := s.loadCountries(ctx)
	if err != nil {
		s.Logger.Warn("failed to load nationality list, falling back to empty", zap.Error(err))
		countries = nil
	}
	docTypes, err := s.loadDocumentTypes(ctx)
	if err != nil {
		s.Logger.Warn("failed to load document type master, falling back to empty", zap.Error(err))
		docTypes = nil
	}
	s.rebuild(countries, docTypes)
	return nil
}

func (s *DefaultService) Refresh(ctx context.Context) error {
	countries, err := s.Gateway.GetNationalityList(ctx)
	if err != nil {
		return err
	}
	docTypes, err := s.Gateway.FetchDocumentTypeMaster(ctx)
	if err != nil {
		return err
	}
	s.cachePut(ctx, nationalitiesCacheKey, countries)
	s.cachePut(ctx, documentTypesCacheKey, docTypes)
	s.rebuild(countries, docTypes)
	return nil
}

func (s *DefaultService) loadCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if s.cacheGet(ctx, nationalitiesCacheKey, &countries) && len(countries) > 0 {
		return countries, nil
	}
	countries, err := s.Gateway.GetNationalityList(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, nationalitiesCacheKey, countries)
	return countries, nil
}

func (s *DefaultService) loadDocumentTypes(ctx context.Context) ([]models.DocumentTypeMapping, error) {
	var docTypes []models.DocumentTypeMapping
	if s.cacheGet(ctx, documentTypesCacheKey, &docTypes) && len(docTypes) > 0 {
		return docTypes, nil
	}
	docTypes, err := s.Gateway.FetchDocumentTypeMaster(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, documentTypesCacheKey, docTypes)
	return docTypes, nil
}

func (s *DefaultService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.Cache == nil {
		return false
	}
	data, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.Logger.Warn("refdata cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.Logger.Warn("refdata cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DefaultService) cachePut(ctx context.Context, key string, v any) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("refdata cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultService) rebuild(countries []models.Country, docTypes []models.DocumentTypeMapping) {
	nameToCode := make(map[string]string, len(countries))
	codeToName := make(map[string]string, len(countries))
	for _, c := range countries {
		nameToCode[c.CountryName] = c.CountryCode
		codeToName[c.CountryCode] = c.CountryName
	}
	docToOpera := make(map[string]string, len(docTypes))
	for _, d := range docTypes {
		docToOpera[normalizeDocCode(d.DocumentCode)] = d.OperaDocumentCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = countries
	s.docTypes = docTypes
	s.nameToCode = nameToCode
	s.codeToName = codeToName
	s.docToOpera = docToOpera
}

func (s *DefaultService) Countries() []models.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countries
}

func (s *DefaultService) DocumentTypes() []models.DocumentTypeMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docTypes
}

func (s *DefaultService) NationalityCode(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nameToCode[name]
}

func (s *DefaultService) NationalityName(code string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.codeToName[code]
}

func (s *DefaultService) OperaDocumentCode(localCode string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if opera, ok := s.docToOpera[normalizeDocCode(localCode)]; ok {
		return opera
	}
	return localCode
}

func normalizeDocCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
