package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/hashicorp/terraform-plugin-go/tfprotov6"
)

const (
	testStackID       = "ocid1.ormstack.oc1..test"
	testDeployStageID = "ocid1.devopsdeploystage.oc1..test"
	testCompartmentID = "ocid1.compartment.oc1..test"
)

var (
	// testAccProtoV6ProviderFactories are used to instantiate a provider during
	// acceptance testing. The factory function will be invoked for every Terraform
	// CLI command executed to create a provider server to which the CLI can reattach.
	testAccProtoV6ProviderFactories = map[string]func() (tfprotov6.ProviderServer, error){
		"oci": providerserver.NewProtocol6WithError(New("test")()),
	}
)

// nolint
func providerConfig(endpoint string) string {
	return fmt.Sprintf(`
provider "oci" {
	endpoint = "%s"
	token    = "test"
}
`, endpoint)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func defaultHttpTestServer(handlers map[string]func(w http.ResponseWriter, req *http.Request)) *httptest.Server {
	if handlers == nil {
		handlers = make(map[string]func(w http.ResponseWriter, req *http.Request))
	}

	if _, ok := handlers["/20180917/stacks/"+testStackID]; !ok {
		handlers["/20180917/stacks/"+testStackID] = func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `
				{
					"id": "`+testStackID+`",
					"compartmentId": "`+testCompartmentID+`",
					"displayName": "network",
					"description": "shared network",
					"lifecycleState": "ACTIVE",
					"terraformVersion": "1.5.x",
					"variables": {"region": "eu-frankfurt-1", "cidr": "10.0.0.0/16"},
					"configSource": {
						"configSourceType": "GIT_CONFIG_SOURCE",
						"workingDirectory": "envs/prod",
						"repositoryUrl": "https://example.com/network.git",
						"branchName": "main"
					}
				}
			`)
		}
	}

	if _, ok := handlers["/20180917/stacks"]; !ok {
		handlers["/20180917/stacks"] = func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `
				[
					{"id": "`+testStackID+`", "displayName": "network", "lifecycleState": "ACTIVE", "terraformVersion": "1.5.x"},
					{"id": "ocid1.ormstack.oc1..other", "displayName": "database", "lifecycleState": "ACTIVE", "terraformVersion": "1.2.x"}
				]
			`)
		}
	}

	if _, ok := handlers["/20210630/deployStages/"+testDeployStageID]; !ok {
		handlers["/20210630/deployStages/"+testDeployStageID] = func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `
				{
					"id": "`+testDeployStageID+`",
					"displayName": "rolling",
					"deployPipelineId": "ocid1.devopspipeline.oc1..test",
					"deployStageType": "COMPUTE_INSTANCE_GROUP_ROLLING_DEPLOYMENT",
					"lifecycleState": "ACTIVE",
					"deployStagePredecessorCollection": {"items": [{"id": "ocid1.devopspipeline.oc1..test"}]},
					"rolloutPolicy": {
						"policyType": "COMPUTE_INSTANCE_GROUP_LINEAR_ROLLOUT_POLICY_BY_COUNT",
						"batchCount": 5,
						"batchDelayInSeconds": 30
					}
				}
			`)
		}
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler := handlers[strings.TrimSpace(r.URL.Path)]
		if handler == nil {
			writeJSON(w, http.StatusNotFound, `{"code":"NotAuthorizedOrNotFound","message":"unsupported handler"}`)
			return
		}
		handler(w, r)
	}))
}
