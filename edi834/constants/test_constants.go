package constants

// Fixture paths, relative to a package directory under edi834/.
const TestEDIPath = "../../shared_files/edi834/"
const TestSampleFile = "sample.edi"
const TestISAFile = "sample_isa_pipe.edi"
const TestBadFile = "bad_required_field.edi"
const TestS3Bucket = "edi834-test-bucket"
