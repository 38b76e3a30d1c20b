package ntru

import "falcon-signature/internal/logging"

var logger = logging.New("ntru")
