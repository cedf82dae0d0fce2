// Copyright 2026 The kubectl-smart Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package forecast

import (
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"math"
	"time"

	"crypto/x509"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/kubectl-smart/kubectl-smart/pkg/model"
)

// certExpiryWarningDays is the "warn inside this many days" threshold
// (spec.md §4.5).
const certExpiryWarningDays = 14

// tlsSecretTypes are the Secret `type` values eligible for
// certificate-expiry checking.
var tlsSecretTypes = map[string]bool{
	"kubernetes.io/tls": true,
	"Opaque":            true,
}

// certDataKeys are the `data` keys that may hold a PEM/DER certificate.
var certDataKeys = []string{"tls.crt", "cert"}

// CertExpiryWarning is a forecasted certificate expiry issue.
type CertExpiryWarning struct {
	ResourceUID     string
	Name            string
	Namespace       string
	NotAfter        time.Time
	DaysUntilExpiry int
	SuggestedAction string
}

// CertReferenceWarning flags an Ingress's TLS secret reference without
// parsing the certificate itself (spec.md §4.5).
type CertReferenceWarning struct {
	ResourceUID string
	Name        string
	Namespace   string
	SecretName  string
	Hosts       []string
}

// CheckSecretExpiry inspects secret's certificate data (if any) and
// returns an expiry warning when notAfter is within
// certExpiryWarningDays of now, or nil otherwise (spec.md §4.5).
func CheckSecretExpiry(logger log.Logger, secret model.ResourceRecord, now time.Time) *CertExpiryWarning {
	secretType := secret.Properties.GetString("type", "")
	if !tlsSecretTypes[secretType] {
		return nil
	}

	data := secret.Properties.GetMap("data")
	if data == nil {
		return nil
	}

	var encoded string
	for _, key := range certDataKeys {
		if v, ok := data[key].(string); ok && v != "" {
			encoded = v
			break
		}
	}
	if encoded == "" {
		return nil
	}

	cert, err := parseCertificate(encoded)
	if err != nil {
		_ = level.Debug(logger).Log("msg", "certificate parse failed, skipping", "secret", secret.FullName(), "err", err)
		return nil
	}

	daysUntilExpiry := int(math.Round(cert.NotAfter.Sub(now).Hours() / 24))
	if daysUntilExpiry > certExpiryWarningDays {
		return nil
	}
	return &CertExpiryWarning{
		ResourceUID:     secret.UID,
		Name:            secret.Name,
		Namespace:       secret.Namespace,
		NotAfter:        cert.NotAfter,
		DaysUntilExpiry: daysUntilExpiry,
		SuggestedAction: fmt.Sprintf("renew certificate for secret %s", secret.Name),
	}
}

// CheckIngressReferences lists ingress's TLS secret references without
// parsing any certificate (spec.md §4.5).
func CheckIngressReferences(ingress model.ResourceRecord) []CertReferenceWarning {
	var warnings []CertReferenceWarning
	for _, entry := range ingress.Properties.GetSlice("spec.tls") {
		tlsCfg, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		secretName, _ := tlsCfg["secretName"].(string)
		if secretName == "" {
			continue
		}
		var hosts []string
		if rawHosts, ok := tlsCfg["hosts"].([]any); ok {
			for _, h := range rawHosts {
				if s, ok := h.(string); ok {
					hosts = append(hosts, s)
				}
			}
		}
		warnings = append(warnings, CertReferenceWarning{
			ResourceUID: ingress.UID,
			Name:        ingress.Name,
			Namespace:   ingress.Namespace,
			SecretName:  secretName,
			Hosts:       hosts,
		})
	}
	return warnings
}

// parseCertificate base64-decodes encoded, then tries PEM and finally
// raw DER X.509 parsing (spec.md §4.5).
func parseCertificate(encoded string) (*x509.Certificate, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	if block, _ := pem.Decode(raw); block != nil {
		return x509.ParseCertificate(block.Bytes)
	}
	return x509.ParseCertificate(raw)
}
