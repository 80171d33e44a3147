package provider

import (
	"fmt"
	"testing"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/devops"
	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DeployStageDataSource(t *testing.T) {
	t.Parallel()

	server := defaultHttpTestServer(nil)
	defer server.Close()

	resource.Test(t, resource.TestCase{
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Read
			{
				Config: providerConfig(server.URL) + fmt.Sprintf(`data "oci_devops_deploy_stage" "rolling" {
					deploy_stage_id = "%s"
				}`, testDeployStageID),
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("data.oci_devops_deploy_stage.rolling", "display_name", "rolling"),
					resource.TestCheckResourceAttr("data.oci_devops_deploy_stage.rolling", "predecessor_ids.#", "1"),
					resource.TestCheckResourceAttr("data.oci_devops_deploy_stage.rolling", "rollout_policy.policy_type", devops.PolicyTypeLinearRolloutPolicyByCount),
					resource.TestCheckResourceAttr("data.oci_devops_deploy_stage.rolling", "rollout_policy.batch_count", "5"),
					resource.TestCheckResourceAttr("data.oci_devops_deploy_stage.rolling", "rollout_policy.batch_delay_in_seconds", "30"),
					resource.TestCheckNoResourceAttr("data.oci_devops_deploy_stage.rolling", "rollout_policy.batch_percentage"),
				),
			},
		},
	})
}

func TestRolloutPolicyToModel(t *testing.T) {
	assert.Nil(t, rolloutPolicyToModel(nil))

	m := rolloutPolicyToModel(devops.NewLinearRolloutPolicyByPercentage(25, 10))
	require.NotNil(t, m)
	assert.Equal(t, devops.PolicyTypeLinearRolloutPolicyByPercentage, m.PolicyType.ValueString())
	assert.Equal(t, int64(25), m.BatchPercentage.ValueInt64())
	assert.Equal(t, int64(10), m.BatchDelayInSeconds.ValueInt64())
	assert.True(t, m.BatchCount.IsNull())
}
