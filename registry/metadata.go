package registry

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// RenderMetadata reconstructs the descriptive metadata payload for a token
// ID. It is a pure function of the token ID and the base image location:
// case ID and role code are decoded from the composite ID, and the image
// locator is the base concatenated with the role code.
func RenderMetadata(id interfaces.TokenID, imageBase string) interfaces.TokenMetadata {
	caseID := id.CaseID()
	roleCode := id.RoleCode()
	role := interfaces.Role(roleCode)

	return interfaces.TokenMetadata{
		Name:        fmt.Sprintf("Access Credential #%d", uint64(id)),
		Description: fmt.Sprintf("Non-transferrable %s credential for case %s", role, caseID),
		Image:       fmt.Sprintf("%s%d.png", imageBase, roleCode),
		Properties: interfaces.TokenProperties{
			CaseID: caseID.String(),
			Role:   fmt.Sprintf("%d", roleCode),
		},
	}
}

// Metadata renders the metadata payload for a token ID using the currently
// configured base image location.
func (r *CredentialRegistry) Metadata(id interfaces.TokenID) interfaces.TokenMetadata {
	r.mu.RLock()
	base := r.imageBase
	r.mu.RUnlock()

	return RenderMetadata(id, base)
}

// URI renders the metadata payload as a self-contained
// data:application/json;base64 URI. No external fetch is required to
// interpret the result.
func (r *CredentialRegistry) URI(id interfaces.TokenID) (string, error) {
	payload, err := json.Marshal(r.Metadata(id))
	if err != nil {
		return "", fmt.Errorf("failed to encode token metadata: %w", err)
	}

	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(payload), nil
}
