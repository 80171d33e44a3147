// Package certificatesmanagement is the client of the Certificates
// management service.
package certificatesmanagement

import (
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	ConfigTypeRootCaGeneratedInternally       = "ROOT_CA_GENERATED_INTERNALLY"
	ConfigTypeSubordinateCaIssuedByInternalCa = "SUBORDINATE_CA_ISSUED_BY_INTERNAL_CA"
)

const (
	LifecycleStateCreating           = "CREATING"
	LifecycleStateActive             = "ACTIVE"
	LifecycleStateUpdating           = "UPDATING"
	LifecycleStateDeleting           = "DELETING"
	LifecycleStateDeleted            = "DELETED"
	LifecycleStateSchedulingDeletion = "SCHEDULING_DELETION"
	LifecycleStatePendingDeletion    = "PENDING_DELETION"
	LifecycleStateCancellingDeletion = "CANCELLING_DELETION"
	LifecycleStateFailed             = "FAILED"
)

var (
	CertificateAuthorityLifecycleStateEnum = model.NewEnumSet("CertificateAuthorityLifecycleState",
		LifecycleStateCreating,
		LifecycleStateActive,
		LifecycleStateUpdating,
		LifecycleStateDeleting,
		LifecycleStateDeleted,
		LifecycleStateSchedulingDeletion,
		LifecycleStatePendingDeletion,
		LifecycleStateCancellingDeletion,
		LifecycleStateFailed,
	)

	CertificateAuthorityConfigTypeEnum = model.NewEnumSet("CertificateAuthorityConfigType",
		ConfigTypeRootCaGeneratedInternally,
		ConfigTypeSubordinateCaIssuedByInternalCa,
	)

	SignatureAlgorithmEnum = model.NewEnumSet("SignatureAlgorithm",
		"SHA256_WITH_RSA",
		"SHA384_WITH_RSA",
		"SHA512_WITH_RSA",
		"SHA256_WITH_ECDSA",
		"SHA384_WITH_ECDSA",
		"SHA512_WITH_ECDSA",
	)

	VersionStageEnum = model.NewEnumSet("VersionStage",
		"CURRENT",
		"PENDING",
		"LATEST",
		"PREVIOUS",
		"DEPRECATED",
		"FAILED",
	)
)

var (
	certificateSubject = model.NewDescriptor("CertificateSubject",
		model.Attr("common_name", model.StringType),
		model.Attr("country", model.StringType),
		model.Attr("organization", model.StringType),
		model.Attr("organizational_unit", model.StringType),
		model.Attr("locality_name", model.StringType),
		model.Attr("state_or_province_name", model.StringType),
	)

	validity = model.NewDescriptor("Validity",
		model.Attr("time_of_validity_not_before", model.TimestampType),
		model.Attr("time_of_validity_not_after", model.TimestampType),
	)

	certificateAuthorityConfigDetails = model.NewDescriptor("CertificateAuthorityConfigDetails",
		model.Attr("config_type", model.EnumType(CertificateAuthorityConfigTypeEnum)),
		model.Attr("version_name", model.StringType),
	).Discriminated("config_type", map[string]string{
		ConfigTypeRootCaGeneratedInternally:       "RootCaGeneratedInternallyConfigDetails",
		ConfigTypeSubordinateCaIssuedByInternalCa: "SubordinateCaIssuedByInternalCaConfigDetails",
	})

	rootCaGeneratedInternallyConfigDetails = certificateAuthorityConfigDetails.Extend(
		"RootCaGeneratedInternallyConfigDetails", ConfigTypeRootCaGeneratedInternally,
		model.Attr("validity", model.ModelType("Validity")),
		model.Attr("signing_algorithm", model.EnumType(SignatureAlgorithmEnum)).WithDefault("SHA256_WITH_RSA"),
		model.Attr("subject", model.ModelType("CertificateSubject")),
	)

	subordinateCaIssuedByInternalCaConfigDetails = certificateAuthorityConfigDetails.Extend(
		"SubordinateCaIssuedByInternalCaConfigDetails", ConfigTypeSubordinateCaIssuedByInternalCa,
		model.Attr("issuer_certificate_authority_id", model.StringType),
		model.Attr("validity", model.ModelType("Validity")),
		model.Attr("signing_algorithm", model.EnumType(SignatureAlgorithmEnum)).WithDefault("SHA256_WITH_RSA"),
		model.Attr("subject", model.ModelType("CertificateSubject")),
	)

	certificateAuthorityVersionSummary = model.NewDescriptor("CertificateAuthorityVersionSummary",
		model.Attr("certificate_authority_id", model.StringType),
		model.Attr("version_number", model.IntegerType),
		model.Attr("version_name", model.StringType),
		model.Attr("serial_number", model.StringType),
		model.Attr("time_created", model.TimestampType),
		model.Attr("stages", model.ListOf(model.EnumType(VersionStageEnum))),
		model.Attr("validity", model.ModelType("Validity")),
	)

	certificateAuthority = model.NewDescriptor("CertificateAuthority",
		model.Attr("id", model.StringType),
		model.Attr("issuer_certificate_authority_id", model.StringType),
		model.Attr("name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("time_created", model.TimestampType),
		model.Attr("time_of_deletion", model.TimestampType),
		model.Attr("kms_key_id", model.StringType),
		model.Attr("lifecycle_state", model.EnumType(CertificateAuthorityLifecycleStateEnum)),
		model.Attr("lifecycle_details", model.StringType),
		model.Attr("compartment_id", model.StringType),
		model.Attr("current_version", model.ModelType("CertificateAuthorityVersionSummary")),
		model.Attr("config_type", model.EnumType(CertificateAuthorityConfigTypeEnum)),
		model.Attr("signing_algorithm", model.EnumType(SignatureAlgorithmEnum)),
		model.Attr("subject", model.ModelType("CertificateSubject")),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	certificateAuthoritySummary = model.NewDescriptor("CertificateAuthoritySummary",
		model.Attr("id", model.StringType),
		model.Attr("name", model.StringType),
		model.Attr("lifecycle_state", model.EnumType(CertificateAuthorityLifecycleStateEnum)),
		model.Attr("compartment_id", model.StringType),
		model.Attr("config_type", model.EnumType(CertificateAuthorityConfigTypeEnum)),
		model.Attr("time_created", model.TimestampType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
	)

	createCertificateAuthorityDetails = model.NewDescriptor("CreateCertificateAuthorityDetails",
		model.Attr("name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("compartment_id", model.StringType),
		model.Attr("certificate_authority_config", model.ModelType("CertificateAuthorityConfigDetails")),
		model.Attr("kms_key_id", model.StringType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	updateCertificateAuthorityDetails = model.NewDescriptor("UpdateCertificateAuthorityDetails",
		model.Attr("description", model.StringType),
		model.Attr("current_version_number", model.IntegerType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)
)

// Registry holds every model of the service.
var Registry = model.MustNewRegistry(
	certificateSubject,
	validity,
	certificateAuthorityConfigDetails,
	rootCaGeneratedInternallyConfigDetails,
	subordinateCaIssuedByInternalCaConfigDetails,
	certificateAuthorityVersionSummary,
	certificateAuthority,
	certificateAuthoritySummary,
	createCertificateAuthorityDetails,
	updateCertificateAuthorityDetails,
)

var defaultCodec = model.NewCodec(Registry)
